package sharepoint

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	maxHeaderNameLen  = 256
	maxHeaderValueLen = 8192
)

func validateHostname(hostname string) error {
	if hostname == "" {
		return fmt.Errorf("hostname cannot be empty")
	}

	if strings.Contains(hostname, "://") {
		return fmt.Errorf("hostname must not include a scheme: %q", hostname)
	}

	if strings.ContainsAny(hostname, "/?#") {
		return fmt.Errorf("hostname must not include a path or query: %q", hostname)
	}

	return nil
}

func validateConnectOptions(options ConnectOptions) error {
	if err := validateHostname(options.SiteHostname); err != nil {
		return fmt.Errorf("invalid site hostname: %w", err)
	}

	if options.TenantID == "" {
		return fmt.Errorf("tenant id cannot be empty")
	}

	if options.RefreshToken == "" {
		return fmt.Errorf("refresh token cannot be empty")
	}

	if options.AppCredentials.ClientID == "" || options.AppCredentials.ClientSecret == "" {
		return fmt.Errorf("app credentials are incomplete")
	}

	return nil
}

func validateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	if len(name) > maxHeaderNameLen {
		return fmt.Errorf("header name exceeds maximum length of %d characters", maxHeaderNameLen)
	}

	for _, r := range name {
		if !isValidHeaderNameChar(r) {
			return fmt.Errorf("header name contains invalid character: %q", r)
		}
	}

	return nil
}

func validateHeaderValue(value string) error {
	if len(value) > maxHeaderValueLen {
		return fmt.Errorf("header value exceeds maximum length of %d characters", maxHeaderValueLen)
	}

	for _, r := range value {
		if r == '\r' || r == '\n' {
			return fmt.Errorf("header value cannot contain CR or LF characters")
		}
	}

	return nil
}

func isValidHeaderNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

func validateHeaders(headers map[string]string) error {
	for name, value := range headers {
		if err := validateHeaderName(name); err != nil {
			return fmt.Errorf("invalid header name %q: %w", name, err)
		}

		if err := validateHeaderValue(value); err != nil {
			return fmt.Errorf("invalid header value for %q: %w", name, err)
		}
	}

	return nil
}
