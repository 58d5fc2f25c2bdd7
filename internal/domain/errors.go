package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrUsage indicates the command line arguments are invalid
	ErrUsage = errors.New("invalid usage")

	// ErrNotAFile indicates a path does not exist or is not a regular file
	ErrNotAFile = errors.New("is not a file")

	// ErrNotReadable indicates a file cannot be opened for reading
	ErrNotReadable = errors.New("is not readable")

	// ErrEmptyFile indicates a file has zero length
	ErrEmptyFile = errors.New("is empty")

	// ErrInvalidURL indicates the service URL is missing or malformed
	ErrInvalidURL = errors.New("invalid URL")

	// ErrMalformedEntry indicates a manifest line lacks a document ID
	ErrMalformedEntry = errors.New("malformed manifest entry")
)

// Exit codes returned by the CLI
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError represents wrong argument count or a non-numeric document ID
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func (e *UsageError) Unwrap() error {
	return ErrUsage
}

// NewUsageError creates a new UsageError
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// FileAccessError represents a missing, unreadable or empty input file
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file >%s< %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// NewFileAccessError creates a new FileAccessError
func NewFileAccessError(path string, err error) *FileAccessError {
	return &FileAccessError{
		Path: path,
		Err:  err,
	}
}

// ManifestError represents a manifest data line that cannot be interpreted
type ManifestError struct {
	Line int
	Text string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest line %d >%s<: %v", e.Line, e.Text, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// ConnectionError represents a failure to establish a session
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to >%s< failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(url string, err error) *ConnectionError {
	return &ConnectionError{
		URL: url,
		Err: err,
	}
}

// TransportError represents a request that failed below the HTTP status level.
// Attempted counts the failing request.
type TransportError struct {
	DocID     string
	Attempted int
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("delete request for DocID %s failed after %d attempted: %v", e.DocID, e.Attempted, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError represents a response whose transport status is not SuccessStatus
type StatusError struct {
	DocID     string
	Status    string
	Attempted int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("delete request for DocID %s returned status %s, expected %s", e.DocID, e.Status, SuccessStatus)
}

// IsUsage reports whether err is a usage error
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

// ExitCode maps an error returned by a run to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsUsage(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}
