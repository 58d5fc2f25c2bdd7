package ucm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quantmind-br/ucmpurge/internal/domain"
)

// StatusCodeError is returned when a service call gets a non-success status
type StatusCodeError struct {
	Service string
	Status  string
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("%s returned HTTP status %s", e.Service, e.Status)
}

// TransportStatus finds the HTTP status code of a response. It collects the
// second token of the status line and of every header value whose first token
// is an HTTP version. The first code other than 200 is returned, so a failure
// reported anywhere in the response is never masked by a 200 status line.
// Otherwise the first match is returned. ok is false when none matches.
func TransportStatus(resp *domain.DeleteResponse) (status string, ok bool) {
	if resp == nil {
		return "", false
	}

	var found []string
	if status, ok := statusFromValue(resp.StatusLine); ok {
		found = append(found, status)
	}

	// Header maps have no order; sort for a stable pick
	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range resp.Headers[name] {
			if status, ok := statusFromValue(value); ok {
				found = append(found, status)
			}
		}
	}

	if len(found) == 0 {
		return "", false
	}
	for _, status := range found {
		if status != domain.SuccessStatus {
			return status, true
		}
	}
	return found[0], true
}

func statusFromValue(value string) (string, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return "", false
	}
	if !strings.HasPrefix(strings.ToUpper(fields[0]), "HTTP/") {
		return "", false
	}
	return fields[1], true
}
