package repository

import "errors"

// ErrNoRowsAffected signals that a mutation matched no rows.
var ErrNoRowsAffected = errors.New("no rows affected")
