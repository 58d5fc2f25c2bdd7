package domain

import (
	"fmt"
	"net/http"
)

const (
	// SuccessStatus is the only transport status accepted for a delete
	SuccessStatus = "200"

	// ManifestFileName names the synthetic entry for the manifest document itself
	ManifestFileName = "MANIFEST.MF"

	// ServiceDeleteDoc is the service operation that deletes a document by ID
	ServiceDeleteDoc = "DELETE_DOC"

	// ServicePing is the service operation used to check a session
	ServicePing = "PING_SERVER"
)

// ConnectionInfo holds the values read from a connection properties file.
// Any field may be empty.
type ConnectionInfo struct {
	URL      string
	Username string
	Password string
	Policy   string
}

// String returns a printable form with the password masked
func (c ConnectionInfo) String() string {
	password := ""
	if c.Password != "" {
		password = "****"
	}
	return fmt.Sprintf("url=%s username=%s password=%s policy=%s", c.URL, c.Username, password, c.Policy)
}

// ManifestEntry is one data line of a manifest file
type ManifestEntry struct {
	FileName string `json:"file_name" yaml:"file_name"`
	DocID    string `json:"doc_id" yaml:"doc_id"`
}

// DeletionBatch is the ordered list of documents to delete. The manifest
// document itself is always the last entry.
type DeletionBatch struct {
	Entries []ManifestEntry
}

// NewDeletionBatch appends the manifest-self entry to entries
func NewDeletionBatch(entries []ManifestEntry, manifestDocID string) DeletionBatch {
	all := make([]ManifestEntry, 0, len(entries)+1)
	all = append(all, entries...)
	all = append(all, ManifestEntry{FileName: ManifestFileName, DocID: manifestDocID})
	return DeletionBatch{Entries: all}
}

// Len returns the number of delete requests the batch needs
func (b DeletionBatch) Len() int {
	return len(b.Entries)
}

// DeleteRequest is a single service call. A new value is built for every entry.
type DeleteRequest struct {
	Service  string
	DocID    string
	FileName string
}

// NewDeleteRequest builds the DELETE_DOC request for entry
func NewDeleteRequest(entry ManifestEntry) DeleteRequest {
	return DeleteRequest{
		Service:  ServiceDeleteDoc,
		DocID:    entry.DocID,
		FileName: entry.FileName,
	}
}

// DeleteResponse carries what the service returned for a request
type DeleteResponse struct {
	// StatusLine is the raw HTTP status line, e.g. "HTTP/1.1 200 OK"
	StatusLine string
	Headers    http.Header
}

// ResultKind tags the outcome of a delete sequence
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultConnectionFailure
	ResultTransportFailure
	ResultStatusFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultConnectionFailure:
		return "connection_failure"
	case ResultTransportFailure:
		return "transport_failure"
	case ResultStatusFailure:
		return "status_failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of a run. Attempted counts requests sent, including
// a failing one.
type Result struct {
	Kind      ResultKind
	Attempted int
	Status    string
	Err       error
}

// Success creates a successful result for count requests
func Success(count int) Result {
	return Result{Kind: ResultSuccess, Attempted: count}
}

// ConnectionFailure creates a result for a session that could not be opened
func ConnectionFailure(err error) Result {
	return Result{Kind: ResultConnectionFailure, Err: err}
}

// TransportFailure creates a result for a request that failed in transport
func TransportFailure(err error, attempted int) Result {
	return Result{Kind: ResultTransportFailure, Attempted: attempted, Err: err}
}

// StatusFailure creates a result for a non-success transport status
func StatusFailure(err *StatusError) Result {
	return Result{Kind: ResultStatusFailure, Attempted: err.Attempted, Status: err.Status, Err: err}
}

// OK reports whether the whole batch was processed
func (r Result) OK() bool {
	return r.Kind == ResultSuccess
}

// Completed returns the number of requests that finished with an accepted status
func (r Result) Completed() int {
	switch r.Kind {
	case ResultSuccess:
		return r.Attempted
	case ResultTransportFailure, ResultStatusFailure:
		if r.Attempted == 0 {
			return 0
		}
		return r.Attempted - 1
	default:
		return 0
	}
}
