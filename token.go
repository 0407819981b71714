package sharepoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	tokenEndpointFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	defaultGrantType    = "refresh_token"
)

func defaultScope(hostname string) string {
	return fmt.Sprintf("https://%s/.default", hostname)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// fetchAccessToken exchanges the refresh token for a bearer access token.
// Failures are logged and reported as an empty token; the connector turns
// that into ErrAuthentication.
func fetchAccessToken(ctx context.Context, transport Transport, logger Logger, options ConnectOptions) string {
	form := url.Values{}
	form.Set("client_id", options.AppCredentials.ClientID)
	form.Set("client_secret", options.AppCredentials.ClientSecret)
	form.Set("refresh_token", options.RefreshToken)
	form.Set("grant_type", options.GrantType)
	form.Set("scope", options.Scope)

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	endpoint := fmt.Sprintf(tokenEndpointFormat, options.TenantID)

	res, err := transport.Do(ctx, http.MethodPost, endpoint, headers, []byte(form.Encode()))
	if err != nil {
		fields := map[string]interface{}{
			"tenant_id": options.TenantID,
			"error":     err.Error(),
		}

		var resErr *ResponseError
		if errors.As(err, &resErr) && resErr.Response != nil {
			fields["status_code"] = resErr.Response.StatusCode

			var body tokenErrorResponse
			if json.Unmarshal(resErr.Response.Data, &body) == nil && body.ErrorDescription != "" {
				fields["error_description"] = body.ErrorDescription
			}
		}

		logger.Error(ctx, "token request failed", fields)
		return ""
	}

	var body tokenResponse
	if err := json.Unmarshal(res.Data, &body); err != nil || body.AccessToken == "" {
		logger.Error(ctx, "token response did not contain an access token", map[string]interface{}{
			"tenant_id": options.TenantID,
		})
		return ""
	}

	return body.AccessToken
}
