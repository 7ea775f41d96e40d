// Package search enumerates the files of a single directory whose names
// match a glob pattern.
//
// Each discovered file is announced to the registered observers before it is
// accepted. Observers run synchronously on the searching goroutine and may
// stop the search by setting FoundEvent.Cancel. Subdirectories are never
// entered.
package search
