// Package failure defines the marker errors shared by the project lifecycle
// components and the helper that tags wrapped errors with them.
//
// User cancellation is never an error: dialogs that are declined surface as a
// false result or a nil task. Everything else is classified with errors.Is
// against the markers below.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO marks unreadable or unwritable project paths.
	ErrIO = errors.New("i/o failure")
	// ErrDeserialize marks malformed project content.
	ErrDeserialize = errors.New("deserialization failure")
	// ErrRecoveryWrite marks a failed autorecovery snapshot. Never shown to the user.
	ErrRecoveryWrite = errors.New("recovery write failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. A nil marker defaults to ErrIO.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for err suitable for log fields and UI messages.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDeserialize):
		return "deserialization"
	case errors.Is(err, ErrRecoveryWrite):
		return "recovery_write"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "project failure"
	}
	return strings.Join(parts, ": ")
}
