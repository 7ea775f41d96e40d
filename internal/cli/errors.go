package cli

import (
	"context"
	"errors"

	"github.com/AgaevDavid/filescan/internal/rank"
	"github.com/AgaevDavid/filescan/internal/search"
)

// Kind names the category of err for error reports.
func Kind(err error) string {
	var fsErr *search.FilesystemError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, search.ErrDirectoryNotFound):
		return "DirectoryNotFound"
	case errors.Is(err, search.ErrNotADirectory):
		return "NotADirectory"
	case errors.As(err, &fsErr):
		return "FilesystemError"
	case errors.Is(err, rank.ErrEmptyCollection):
		return "EmptyCollection"
	case errors.Is(err, search.ErrInvalidArgument),
		errors.Is(err, rank.ErrInvalidArgument),
		errors.Is(err, ErrInvalidOption):
		return "InvalidArgument"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	default:
		return "Error"
	}
}
