package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// UCMRequest is one request received by FakeUCM
type UCMRequest struct {
	Service  string
	DocID    string
	Username string
	Password string
}

// FakeUCM is an httptest server that answers idcplg service requests
type FakeUCM struct {
	*httptest.Server

	mu           sync.Mutex
	username     string
	password     string
	pingStatus   int
	deleteStatus map[string]int
	drop         map[string]bool
	requests     []UCMRequest
}

// NewFakeUCM starts a fake content server. By default every request is
// answered with 200 and no credentials are checked.
func NewFakeUCM(t *testing.T) *FakeUCM {
	t.Helper()

	f := &FakeUCM{
		pingStatus:   http.StatusOK,
		deleteStatus: make(map[string]int),
		drop:         make(map[string]bool),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))

	t.Cleanup(func() {
		f.Server.Close()
	})

	return f
}

// RequireCredentials makes the server answer 401 to other credentials
func (f *FakeUCM) RequireCredentials(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.username = username
	f.password = password
}

// SetPingStatus sets the status returned for PING_SERVER
func (f *FakeUCM) SetPingStatus(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingStatus = code
}

// SetDeleteStatus sets the status returned when deleting docID
func (f *FakeUCM) SetDeleteStatus(docID string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteStatus[docID] = code
}

// DropConnection closes the connection without a response when deleting docID
func (f *FakeUCM) DropConnection(docID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drop[docID] = true
}

// Requests returns every request received so far
func (f *FakeUCM) Requests() []UCMRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]UCMRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// DeletedIDs returns the dID of every DELETE_DOC request in arrival order
func (f *FakeUCM) DeletedIDs() []string {
	var ids []string
	for _, r := range f.Requests() {
		if r.Service == "DELETE_DOC" {
			ids = append(ids, r.DocID)
		}
	}
	return ids
}

// PingCount returns how many PING_SERVER requests were received
func (f *FakeUCM) PingCount() int {
	n := 0
	for _, r := range f.Requests() {
		if r.Service == "PING_SERVER" {
			n++
		}
	}
	return n
}

func (f *FakeUCM) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	user, pass, _ := r.BasicAuth()
	req := UCMRequest{
		Service:  r.PostForm.Get("IdcService"),
		DocID:    r.PostForm.Get("dID"),
		Username: user,
		Password: pass,
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	authFailed := f.username != "" && (user != f.username || pass != f.password)
	status := http.StatusOK
	drop := false
	switch req.Service {
	case "PING_SERVER":
		status = f.pingStatus
	case "DELETE_DOC":
		if code, ok := f.deleteStatus[req.DocID]; ok {
			status = code
		}
		drop = f.drop[req.DocID]
	}
	f.mu.Unlock()

	if drop {
		if hj, ok := w.(http.Hijacker); ok {
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
				return
			}
		}
	}

	if authFailed {
		status = http.StatusUnauthorized
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"LocalData": map[string]string{
			"IdcService":    req.Service,
			"dID":           req.DocID,
			"StatusCode":    "0",
			"StatusMessage": "You are logged in as '" + user + "'.",
		},
	})
}
