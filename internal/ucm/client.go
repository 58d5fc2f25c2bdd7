package ucm

import (
	"context"
	"fmt"
	"net/url"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/internal/utils"
	"github.com/quantmind-br/ucmpurge/pkg/version"
)

// Client creates sessions against content servers
type Client struct {
	tlsClient tls_client.HttpClient
	userAgent string
	retrier   *Retrier
	logger    *utils.Logger
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout            time.Duration
	ConnectRetries     int
	UserAgent          string
	ProxyURL           string
	InsecureSkipVerify bool
	Logger             *utils.Logger
}

// defaultTimeout applies when ClientOptions.Timeout is unset
const defaultTimeout = 30 * time.Second

// NewClient creates a new content server client. Zero options get defaults:
// a 30s timeout, no connect retries and the ucmpurge User-Agent.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = version.UserAgent()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(opts.Timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithNotFollowRedirects(),
	}

	if opts.ProxyURL != "" {
		tlsOpts = append(tlsOpts, tls_client.WithProxyUrl(opts.ProxyURL))
	}
	if opts.InsecureSkipVerify {
		tlsOpts = append(tlsOpts, tls_client.WithInsecureSkipVerify())
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries:      opts.ConnectRetries,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	})

	return &Client{
		tlsClient: tlsClient,
		userAgent: opts.UserAgent,
		retrier:   retrier,
		logger:    opts.Logger.WithComponent("ucm"),
	}, nil
}

// Connect validates info.URL and checks the credentials with PING_SERVER.
// Any failure is returned as a *domain.ConnectionError.
func (c *Client) Connect(ctx context.Context, info domain.ConnectionInfo) (domain.Session, error) {
	endpoint, err := parseEndpoint(info.URL)
	if err != nil {
		return nil, domain.NewConnectionError(info.URL, err)
	}

	s := &Session{
		client:   c,
		endpoint: endpoint,
		username: info.Username,
		password: info.Password,
		policy:   info.Policy,
		logger:   c.logger.WithURL(endpoint),
	}

	s.logger.Debug().Str("username", info.Username).Str("policy", info.Policy).Msg("Opening session")

	err = c.retrier.Retry(ctx, func() error {
		return s.ping(ctx)
	})
	if err != nil {
		return nil, domain.NewConnectionError(info.URL, err)
	}

	return s, nil
}

// Close releases client resources
func (c *Client) Close() error {
	// TLS client doesn't have a Close method, but we keep this for interface compliance
	return nil
}

// parseEndpoint accepts absolute http and https URLs only
func parseEndpoint(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", domain.ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", domain.ErrInvalidURL)
	}

	return u.String(), nil
}
