package sharepoint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		wantErr  bool
	}{
		{name: "valid hostname", hostname: "contoso.sharepoint.com", wantErr: false},
		{name: "empty", hostname: "", wantErr: true},
		{name: "with scheme", hostname: "https://contoso.sharepoint.com", wantErr: true},
		{name: "with path", hostname: "contoso.sharepoint.com/sites/x", wantErr: true},
		{name: "with query", hostname: "contoso.sharepoint.com?x=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHostname(tt.hostname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		wantErr bool
	}{
		{name: "nil headers", headers: nil, wantErr: false},
		{name: "valid headers", headers: map[string]string{"X-RequestDigest": "abc"}, wantErr: false},
		{name: "empty name", headers: map[string]string{"": "v"}, wantErr: true},
		{name: "invalid name character", headers: map[string]string{"X Bad": "v"}, wantErr: true},
		{name: "CRLF in value", headers: map[string]string{"X-Bad": "a\r\nb"}, wantErr: true},
		{name: "overlong name", headers: map[string]string{strings.Repeat("a", maxHeaderNameLen+1): "v"}, wantErr: true},
		{name: "overlong value", headers: map[string]string{"X-Long": strings.Repeat("v", maxHeaderValueLen+1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHeaders(tt.headers)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
