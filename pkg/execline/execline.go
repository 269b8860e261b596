// Package execline turns desktop-entry Exec lines into argument vectors.
// Lines are split with POSIX shell quoting rules and stripped of the
// field codes (%f, %U, ...) that the launcher never substitutes.
package execline

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

// ErrMalformedCommand се връща когато командата не е валиден shell синтаксис
var ErrMalformedCommand = errors.New("malformed command")

var fieldCodes = map[string]struct{}{
	"%f":  {},
	"%F":  {},
	"%u":  {},
	"%U":  {},
	"%d":  {},
	"%D":  {},
	"%n":  {},
	"%N":  {},
	"%i":  {},
	"%c":  {},
	"%k":  {},
	"%v":  {},
	"%%m": {},
}

// IsFieldCode reports whether arg is exactly one of the recognised field codes.
func IsFieldCode(arg string) bool {
	_, ok := fieldCodes[arg]
	return ok
}

// FilterFieldCodes returns a copy of args without field-code tokens.
// Tokens that only contain a code (e.g. "--file=%f") are kept.
func FilterFieldCodes(args []string) []string {
	filtered := make([]string, 0, len(args))
	for _, arg := range args {
		if IsFieldCode(arg) {
			continue
		}
		filtered = append(filtered, arg)
	}
	return filtered
}

// Parse splits command into an argument vector and drops field codes.
// An empty command yields an empty vector.
func Parse(command string) ([]string, error) {
	if command == "" {
		return []string{}, nil
	}

	args, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedCommand, command, err)
	}

	return FilterFieldCodes(args), nil
}
