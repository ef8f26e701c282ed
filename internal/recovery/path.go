package recovery

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DerivePath returns the path a recovered project is reassigned to: a sibling
// of original named "<stem> (recovered <timestamp>)<ext>", with " 2", " 3", …
// appended to the stem until exists reports a free name. An empty original
// yields an empty path; the recovered project then stays unsaved.
func DerivePath(original string, now time.Time, exists func(string) bool) string {
	original = strings.TrimSpace(original)
	if original == "" {
		return ""
	}
	dir := filepath.Dir(original)
	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(filepath.Base(original), ext)
	base := fmt.Sprintf("%s (recovered %s)", stem, now.Format("2006-01-02 150405"))

	candidate := filepath.Join(dir, base+ext)
	for n := 2; candidate == original || (exists != nil && exists(candidate)); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s %d%s", base, n, ext))
	}
	return candidate
}
