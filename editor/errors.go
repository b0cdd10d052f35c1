package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConnection is returned by CanConnect when the two ports cannot
	// be wired together. The controller never shows it to the user; a drop on
	// an invalid port is just ignored.
	ErrInvalidConnection = errors.New("invalid connection")

	// ErrNoSpace is returned when a module does not fit anywhere on the
	// canvas.
	ErrNoSpace = errors.New("no free space on the canvas")

	ErrNoSuchModule = errors.New("no such module")
)

type (
	// UnknownModelError is recorded when a patch refers to a model that is
	// not in the registry. The module is skipped, and the rest of the patch
	// is loaded.
	UnknownModelError struct {
		ModuleID int
		Plugin   string
		Model    string
	}

	// MalformedDocumentError aborts loading a patch as a whole; the current
	// patch is left untouched.
	MalformedDocumentError struct {
		Reason string
		Err    error
	}

	// FileIOError wraps the errors of reading and writing patch files.
	FileIOError struct {
		Op   string
		Path string
		Err  error
	}
)

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("module %d: unknown model %s/%s", e.ModuleID, e.Plugin, e.Model)
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed patch: %s: %v", e.Reason, e.Err)
	}
	return "malformed patch: " + e.Reason
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

func (e *FileIOError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error { return e.Err }

func malformed(format string, args ...any) error {
	return &MalformedDocumentError{Reason: fmt.Sprintf(format, args...)}
}
