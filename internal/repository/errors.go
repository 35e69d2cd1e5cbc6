package repository

import "errors"

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// query for a single entity finds no rows, or when a write targets a row that
// does not exist (e.g. inserting a message into a deleted conversation).
//
// The service layer checks for this error and translates it into the
// domain-level app_errors.ErrNotFound, keeping business logic decoupled from
// the database driver's errors (e.g. sql.ErrNoRows).
var ErrNotFound = errors.New("repository: not found")
