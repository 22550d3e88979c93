package store

import "errors"

var (
	// ErrSuperseded is returned by Commit when the state the merge started
	// from is no longer current.
	ErrSuperseded = errors.New("merge superseded")
	// ErrHardNavigate is returned when flight data no longer matches the
	// router state and the navigation must start over from the server.
	ErrHardNavigate = errors.New("router state diverged, hard navigation required")
	ErrMergeDone    = errors.New("merge already committed")
	ErrNoFetcher    = errors.New("no fetcher")
)
