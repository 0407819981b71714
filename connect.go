package sharepoint

import (
	"context"
	"fmt"
	"net/http"

	"dario.cat/mergo"
)

var defaultConnectOptions = ConnectOptions{
	Timeout:   defaultTimeout,
	GrantType: defaultGrantType,
}

// Connect exchanges the refresh token in options for an access token and
// returns a Builder authenticated with it.
func Connect(ctx context.Context, options ConnectOptions) (*Builder, error) {
	if err := mergo.Merge(&options, defaultConnectOptions); err != nil {
		return nil, err
	}

	if err := validateConnectOptions(options); err != nil {
		return nil, fmt.Errorf("invalid connect options: %w", err)
	}

	if options.Scope == "" {
		options.Scope = defaultScope(options.SiteHostname)
	}

	logger := options.Logger
	if logger == nil {
		logger = newDefaultLogger()
	}

	transport := options.Transport
	if transport == nil {
		var err error
		transport, err = newDefaultTransport(options)
		if err != nil {
			return nil, err
		}
	}

	token := fetchAccessToken(ctx, transport, logger, options)
	if token == "" {
		return nil, ErrAuthentication
	}

	return newBuilder(options.SiteHostname, token, transport, logger), nil
}

// ConnectWithToken returns a Builder for callers who already hold a valid
// access token. No network call is made.
func ConnectWithToken(hostname, accessToken string) *Builder {
	transport := &defaultTransport{
		client: http.Client{
			Transport: &http.Transport{IdleConnTimeout: defaultIdleConnTimeout},
			Timeout:   defaultTimeout,
		},
	}

	return newBuilder(hostname, accessToken, transport, newDefaultLogger())
}

func baseHeaders(accessToken string) map[string]string {
	return map[string]string{
		"Accept":        "application/json;odata=verbose",
		"Content-Type":  "application/json;odata=verbose",
		"Authorization": "Bearer " + accessToken,
	}
}
