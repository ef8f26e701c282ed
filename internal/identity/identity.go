// Package identity owns the active project file path and the names derived
// from it.
package identity

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Untitled is the display name of a project that has never been saved.
const Untitled = "Untitled"

// Identity is the canonical active-file path of the open project. The zero
// value is an unsaved project.
type Identity struct {
	path string
}

// Path returns the project file path and whether one is set.
func (i Identity) Path() (string, bool) {
	return i.path, i.path != ""
}

// IsSaved reports whether the project has a file on disk.
func (i Identity) IsSaved() bool {
	return i.path != ""
}

// SetPath points the identity at a written or loaded project file.
func (i *Identity) SetPath(path string) {
	i.path = strings.TrimSpace(path)
}

// Clear marks the project as unsaved.
func (i *Identity) Clear() {
	i.path = ""
}

// DisplayName returns the file name of the project, or Untitled.
func (i Identity) DisplayName() string {
	if i.path == "" {
		return Untitled
	}
	return norm.NFC.String(filepath.Base(i.path))
}

// Title renders a window title, prefixing "*" when there are unsaved changes.
func (i Identity) Title(appName string, modified bool) string {
	name := i.DisplayName()
	if modified {
		name = "*" + name
	}
	if appName = strings.TrimSpace(appName); appName == "" {
		return name
	}
	return name + " - " + appName
}
