package ucm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/internal/utils"
)

// Session is an authenticated handle for service requests. It is used by
// one goroutine at a time.
type Session struct {
	client   *Client
	endpoint string
	username string
	password string
	policy   string
	logger   *utils.Logger
}

// Delete sends a DELETE_DOC request for req.DocID. The error is non-nil only
// when no response was received; the status must be checked by the caller.
func (s *Session) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.DeleteResponse, error) {
	service := req.Service
	if service == "" {
		service = domain.ServiceDeleteDoc
	}
	return s.send(ctx, service, url.Values{"dID": {req.DocID}})
}

// Close releases resources held by the session
func (s *Session) Close() error {
	return nil
}

// ping checks that the server accepts the session credentials
func (s *Session) ping(ctx context.Context) error {
	resp, err := s.send(ctx, domain.ServicePing, nil)
	if err != nil {
		return err
	}

	if status, ok := TransportStatus(resp); ok && status != domain.SuccessStatus {
		return &StatusCodeError{Service: domain.ServicePing, Status: status}
	}

	s.logger.Debug().Str("status", resp.StatusLine).Msg("Session established")
	return nil
}

// send posts one idcplg service call
func (s *Session) send(ctx context.Context, service string, params url.Values) (*domain.DeleteResponse, error) {
	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	form.Set("IdcService", service)

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.client.userAgent)
	req.SetBasicAuth(s.username, s.password)

	resp, err := s.client.tlsClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", service, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", service, err)
	}

	// Convert fhttp.Header to http.Header
	headers := make(http.Header)
	for k, v := range resp.Header {
		headers[k] = v
	}

	return &domain.DeleteResponse{
		StatusLine: resp.Proto + " " + resp.Status,
		Headers:    headers,
	}, nil
}
