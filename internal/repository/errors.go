// Package repository contains data access logic separated from HTTP handlers.
// User accounts live in MySQL; listings, reviews and bookings live in
// MongoDB. The sentinel values below let handlers distinguish expected
// account failures from database faults.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned by UserRepo.Create when the username is taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned by user lookups that match no row.
var ErrUserNotFound = errors.New("user not found")
