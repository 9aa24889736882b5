package services

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRecordNotFound means the requested catalog number is not in the store.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUserNotRegistered means a wishlist operation referenced a user that
	// does not exist. No row is written in that case.
	ErrUserNotRegistered = errors.New("user not registered")

	// ErrImportFailed wraps any parse or persistence error during bulk import.
	// The whole batch is rolled back before it is returned.
	ErrImportFailed = errors.New("import failed")
)
