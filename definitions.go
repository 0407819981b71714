package sharepoint

import (
	"context"
	"net/http"
	"time"
)

// AppCredentials identifies the application registration used for the
// refresh-token grant.
type AppCredentials struct {
	ClientID     string
	ClientSecret string
}

type CertificateConfig struct {
	Cert string
	Key  string
}

// ConnectOptions configures Connect. SiteHostname, TenantID, RefreshToken
// and AppCredentials are required; everything else has a default.
type ConnectOptions struct {
	SiteHostname   string
	TenantID       string
	RefreshToken   string
	AppCredentials AppCredentials

	// Scope defaults to "https://{SiteHostname}/.default".
	Scope string
	// GrantType defaults to "refresh_token".
	GrantType string

	Timeout             time.Duration
	Certificates        []CertificateConfig
	HTTPTransport       *http.Transport
	InsecureSkipVerify  bool
	MaxResponseBodySize int64

	// Transport replaces the default HTTP transport entirely. When set,
	// Timeout, Certificates and the other transport options are ignored.
	Transport Transport
	Logger    Logger
}

// Response is what the Transport hands back for a 2xx reply.
type Response struct {
	StatusCode int
	Data       []byte
	Headers    http.Header
}

// Transport is the HTTP capability the client is built on. Implementations
// must return a non-nil *ResponseError (wrapped or direct) for non-2xx
// replies, carrying the response, and an ordinary error for network-level
// failures where no response was received.
type Transport interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error)
}
