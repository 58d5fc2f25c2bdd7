package app

import "github.com/quantmind-br/ucmpurge/internal/domain"

// UsageLine is printed after every usage error
const UsageLine = "Usage: ucmpurge <UCM connection property file> <location for MANIFEST.MF> <DocID for MANIFEST.MF>"

// ExpectedArgs is the number of positional arguments
const ExpectedArgs = 3

// ValidateArgs checks the argument count and that the manifest DocID is numeric.
// It runs before any file is opened.
func ValidateArgs(args []string) error {
	if len(args) != ExpectedArgs {
		return domain.NewUsageError("Error: Incorrect number of parameters!")
	}

	if !isDigits(args[2]) {
		return domain.NewUsageError("Error: Argument >%s< must contain numbers only!", args[2])
	}

	return nil
}

// isDigits rejects the empty string
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
