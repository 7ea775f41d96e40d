// Package filestat provides summary statistics for the files accepted by a search.
//
// A Collector is registered as a search observer, records the metadata of
// every announced file and, once the search has returned, summarizes the
// accepted ones: count, total and average size, the largest file and the
// largest N files.
package filestat
