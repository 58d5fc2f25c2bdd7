package domain

import "context"

// Connector opens sessions against the content server
type Connector interface {
	// Connect authenticates and returns a session ready for requests
	Connect(ctx context.Context, info ConnectionInfo) (Session, error)
}

// Session issues service requests over an authenticated connection
type Session interface {
	// Delete sends one delete-document-by-ID request
	Delete(ctx context.Context, req DeleteRequest) (*DeleteResponse, error)
	// Close releases resources held by the session
	Close() error
}

// Progress receives one tick per processed entry
type Progress interface {
	Add(n int) error
}
