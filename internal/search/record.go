package search

import (
	"io/fs"
	"time"
)

// FileRecord describes a matching file as observed at discovery time.
type FileRecord struct {
	// Path is the directory joined with the file name.
	Path string `json:"path"`
	// Name is the base name of the file.
	Name string `json:"name"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// CreatedAt is the birth time, or the modification time where the
	// platform does not expose one.
	CreatedAt time.Time `json:"created_at"`
	// ModifiedAt is the last modification time.
	ModifiedAt time.Time `json:"modified_at"`
}

// FoundEvent is dispatched to observers once per discovered file.
type FoundEvent struct {
	// Record is the discovered file.
	Record FileRecord
	// Cancel stops the search when set by any observer. The file carried by
	// this event is then not part of the result.
	Cancel bool
}

// Observer receives FoundEvents during a search.
type Observer func(*FoundEvent)

func newRecord(path string, info fs.FileInfo) FileRecord {
	return FileRecord{
		Path:       path,
		Name:       info.Name(),
		Size:       info.Size(),
		CreatedAt:  birthTime(path, info),
		ModifiedAt: info.ModTime(),
	}
}
