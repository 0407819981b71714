package sharepoint

import (
	"fmt"
	"sort"
	"strings"
)

const (
	hostSuffix      = ".sharepoint.com"
	adminHostSuffix = "-admin.sharepoint.com"
)

func siteBaseURL(hostname, siteName, endpoint string) string {
	return fmt.Sprintf("https://%s/sites/%s/_api/%s", hostname, siteName, endpoint)
}

// adminBaseURL derives the tenant admin host from the site hostname:
// "contoso.sharepoint.com" becomes "contoso-admin.sharepoint.com".
func adminBaseURL(hostname, endpoint string) string {
	tenant := strings.TrimSuffix(hostname, hostSuffix)
	return fmt.Sprintf("https://%s%s/_api/%s", tenant, adminHostSuffix, endpoint)
}

func contextInfoURL(hostname string) string {
	return fmt.Sprintf("https://%s/_api/contextinfo", hostname)
}

// buildQuery joins params as "?key=value&key=value". Values are inserted as
// given, without percent-encoding: OData filter strings need their spaces and
// quotes to survive, so callers supply already-safe values. Keys are emitted
// in sorted order to keep URLs deterministic.
func buildQuery(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	return "?" + strings.Join(pairs, "&")
}
