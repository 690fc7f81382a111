// Package flock provides cross-platform file locking utilities.
//
// The driver's temp files (filtered projects, results, request durations)
// assume a single writer per working directory. An exclusive, non-blocking
// lock on the working directory enforces that across concurrent invocations,
// on both Unix and Windows systems.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - file is in use
//	}
//	defer flock.Unlock(file.Fd())
package flock
