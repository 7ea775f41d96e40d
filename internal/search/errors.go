package search

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotFound is matched by errors returned when the search directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNotADirectory is returned when the search target exists but is not a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrInvalidArgument is returned for malformed search requests.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DirectoryNotFoundError reports a missing search directory.
type DirectoryNotFoundError struct {
	// Path is the directory as given in the request.
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// Is makes errors.Is(err, ErrDirectoryNotFound) succeed.
func (e *DirectoryNotFoundError) Is(target error) bool {
	return target == ErrDirectoryNotFound
}

// FilesystemError wraps a failure of the underlying filesystem while listing
// the directory or reading the metadata of one of its entries.
type FilesystemError struct {
	// Op is the failed operation (stat, open, readdir).
	Op string
	// Path is the file or directory the operation was applied to.
	Path string
	// Err is the error returned by the operating system.
	Err error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
