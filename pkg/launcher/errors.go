package launcher

import "errors"

var (
	// ErrNoProvider се връща когато няма източник на приложения
	ErrNoProvider = errors.New("no application provider configured")

	// ErrNoPicker се връща когато няма picker
	ErrNoPicker = errors.New("no picker configured")

	// ErrNoRunner се връща когато липсва executor или pty wrapper
	ErrNoRunner = errors.New("no command runner configured")
)
