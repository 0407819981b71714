package sharepoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// InitialStage is the view of a Builder before a target is chosen. Api and
// AdminApi reset any prior in-flight state and open a new request cycle.
type InitialStage interface {
	Api(siteName, endpoint string) ConfiguredStage
	AdminApi(endpoint string) ConfiguredStage
}

// ConfiguredStage is the view of a Builder after a target is chosen: query
// modifiers, header overrides, the error policy and the terminal verbs.
// A terminal verb ends the cycle and returns the Builder to its initial
// state, whatever the outcome.
type ConfiguredStage interface {
	Select(fields ...string) ConfiguredStage
	Filter(condition string) ConfiguredStage
	Expand(fields ...string) ConfiguredStage
	OrderBy(field string, ascending bool) ConfiguredStage
	Top(count int) ConfiguredStage
	Skip(count int) ConfiguredStage
	RawQuery(params map[string]interface{}) ConfiguredStage
	SetHeaders(headers map[string]string) ConfiguredStage
	Ignore() ConfiguredStage

	Get(ctx context.Context) (Result, error)
	Post(ctx context.Context, data interface{}) (Result, error)
	Put(ctx context.Context, data interface{}) (Result, error)
	Patch(ctx context.Context, data interface{}) (Result, error)
	Delete(ctx context.Context) (Result, error)
}

// Builder is a fluent client for the site and admin API families. One
// instance serves many sequential requests: each cycle runs from Api/AdminApi
// through a terminal verb, and the terminal verb clears all per-request state
// on every exit path.
//
// A Builder holds a single mutable request record with no internal
// synchronization. Concurrent cycles on one instance are a data race; use
// separate instances (cheap to obtain from the connector) or serialize.
type Builder struct {
	hostname    string
	baseHeaders map[string]string
	transport   Transport
	logger      Logger

	state requestState
}

// requestState is the in-flight record of exactly one request cycle.
type requestState struct {
	initialized        bool
	isAdmin            bool
	siteName           string
	endpoint           string
	queryParams        map[string]string
	tempHeaders        map[string]string
	shouldIgnoreErrors bool
	err                error
}

var (
	_ InitialStage    = (*Builder)(nil)
	_ ConfiguredStage = (*Builder)(nil)
)

func newBuilder(hostname, accessToken string, transport Transport, logger Logger) *Builder {
	return &Builder{
		hostname:    hostname,
		baseHeaders: baseHeaders(accessToken),
		transport:   transport,
		logger:      logger,
	}
}

// Api targets https://{hostname}/sites/{siteName}/_api/{endpoint}.
func (b *Builder) Api(siteName, endpoint string) ConfiguredStage {
	b.reset()
	b.state.initialized = true
	b.state.siteName = siteName
	b.state.endpoint = endpoint
	return b
}

// AdminApi targets the tenant admin host, derived from the site hostname.
func (b *Builder) AdminApi(endpoint string) ConfiguredStage {
	b.reset()
	b.state.initialized = true
	b.state.isAdmin = true
	b.state.endpoint = endpoint
	return b
}

// Select sets $select to the fields joined by commas.
func (b *Builder) Select(fields ...string) ConfiguredStage {
	return b.setParam("$select", strings.Join(fields, ","))
}

// Filter sets $filter to the raw OData condition, unescaped.
func (b *Builder) Filter(condition string) ConfiguredStage {
	return b.setParam("$filter", condition)
}

// Expand sets $expand to the fields joined by commas.
func (b *Builder) Expand(fields ...string) ConfiguredStage {
	return b.setParam("$expand", strings.Join(fields, ","))
}

// OrderBy sets $orderby to "{field} asc" or "{field} desc".
func (b *Builder) OrderBy(field string, ascending bool) ConfiguredStage {
	direction := "asc"
	if !ascending {
		direction = "desc"
	}
	return b.setParam("$orderby", field+" "+direction)
}

// Top sets $top.
func (b *Builder) Top(count int) ConfiguredStage {
	return b.setParam("$top", strconv.Itoa(count))
}

// Skip sets $skip.
func (b *Builder) Skip(count int) ConfiguredStage {
	return b.setParam("$skip", strconv.Itoa(count))
}

// RawQuery merges each entry into the query parameters, stringifying values.
// Last write wins, including over values set by the named helpers.
func (b *Builder) RawQuery(params map[string]interface{}) ConfiguredStage {
	for key, value := range params {
		b.setParam(key, fmt.Sprintf("%v", value))
	}
	return b
}

// SetHeaders replaces the per-request header overlay wholesale; the overlay
// is merged over the base headers at dispatch time. Invalid headers fail the
// cycle at the terminal verb without a network call.
func (b *Builder) SetHeaders(headers map[string]string) ConfiguredStage {
	if err := validateHeaders(headers); err != nil {
		b.state.err = fmt.Errorf("invalid headers: %w", err)
		return b
	}

	overlay := make(map[string]string, len(headers))
	for key, value := range headers {
		overlay[key] = value
	}
	b.state.tempHeaders = overlay
	return b
}

// Ignore converts a remote or transport failure of this cycle into a warning
// log and a nil Result. A nil Result means "request did not succeed", not an
// empty payload.
func (b *Builder) Ignore() ConfiguredStage {
	b.state.shouldIgnoreErrors = true
	return b
}

func (b *Builder) Get(ctx context.Context) (Result, error) {
	return b.execute(ctx, http.MethodGet, nil)
}

func (b *Builder) Post(ctx context.Context, data interface{}) (Result, error) {
	return b.execute(ctx, http.MethodPost, data)
}

func (b *Builder) Put(ctx context.Context, data interface{}) (Result, error) {
	return b.execute(ctx, http.MethodPut, data)
}

func (b *Builder) Patch(ctx context.Context, data interface{}) (Result, error) {
	return b.execute(ctx, http.MethodPatch, data)
}

func (b *Builder) Delete(ctx context.Context) (Result, error) {
	return b.execute(ctx, http.MethodDelete, nil)
}

func (b *Builder) setParam(key, value string) ConfiguredStage {
	if b.state.queryParams == nil {
		b.state.queryParams = make(map[string]string, 4)
	}
	b.state.queryParams[key] = value
	return b
}

func (b *Builder) reset() {
	b.state = requestState{}
}

func (b *Builder) requestURL() string {
	var base string
	if b.state.isAdmin {
		base = adminBaseURL(b.hostname, b.state.endpoint)
	} else {
		base = siteBaseURL(b.hostname, b.state.siteName, b.state.endpoint)
	}
	return base + buildQuery(b.state.queryParams)
}

func (b *Builder) execute(ctx context.Context, method string, data interface{}) (Result, error) {
	if !b.state.initialized {
		return nil, ErrNotConfigured
	}

	// Every exit path below ends the cycle.
	defer b.reset()

	if b.state.err != nil {
		return nil, b.state.err
	}

	endpoint := b.state.endpoint
	ignore := b.state.shouldIgnoreErrors
	requestURL := b.requestURL()

	headers := make(map[string]string, len(b.baseHeaders)+len(b.state.tempHeaders)+1)
	for key, value := range b.baseHeaders {
		headers[key] = value
	}
	for key, value := range b.state.tempHeaders {
		headers[key] = value
	}

	var body []byte
	if data != nil {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("%s %s: failed to encode request body: %w", method, endpoint, err)
		}
	}

	if method != http.MethodGet {
		digest, err := b.fetchDigest(ctx)
		if err != nil {
			return b.fail(ctx, method, endpoint, ignore, err)
		}
		headers["X-RequestDigest"] = digest
	}

	b.logger.Debug(ctx, "dispatching request", map[string]interface{}{
		"method": method,
		"url":    requestURL,
	})

	res, err := b.transport.Do(ctx, method, requestURL, headers, body)
	if err != nil {
		return b.fail(ctx, method, endpoint, ignore, err)
	}

	return Result(res.Data), nil
}

// fetchDigest obtains the anti-forgery token every write verb must carry.
// The context-info call uses the base headers only: no digest exists yet.
func (b *Builder) fetchDigest(ctx context.Context) (string, error) {
	res, err := b.transport.Do(ctx, http.MethodPost, contextInfoURL(b.hostname), b.baseHeaders, nil)
	if err != nil {
		return "", err
	}

	var info contextInfoResponse
	if err := json.Unmarshal(res.Data, &info); err != nil {
		return "", fmt.Errorf("failed to decode context info response: %w", err)
	}

	digest := info.D.GetContextWebInformation.FormDigestValue
	if digest == "" {
		return "", fmt.Errorf("context info response did not contain a form digest")
	}

	return digest, nil
}

func (b *Builder) fail(ctx context.Context, method, endpoint string, ignore bool, err error) (Result, error) {
	apiErr := normalizeError(method, endpoint, err)

	if ignore {
		fields := map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
			"message":  apiErr.Message,
		}
		if apiErr.Code != "" {
			fields["code"] = apiErr.Code
		}
		b.logger.Warn(ctx, "request failed, ignoring error", fields)
		return nil, nil
	}

	return nil, apiErr
}

// normalizeError folds a transport failure into a single APIError. When the
// response body follows the error envelope, its code and message win over
// the transport's own message.
func normalizeError(method, endpoint string, err error) *APIError {
	apiErr := &APIError{
		Method:   method,
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      err,
	}

	var resErr *ResponseError
	if errors.As(err, &resErr) && resErr.Response != nil {
		apiErr.StatusCode = resErr.Response.StatusCode

		var envelope odataErrorEnvelope
		if json.Unmarshal(resErr.Response.Data, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			if envelope.Error.Message.Value != "" {
				apiErr.Message = envelope.Error.Message.Value
			}
		}
	}

	return apiErr
}

type contextInfoResponse struct {
	D struct {
		GetContextWebInformation struct {
			FormDigestValue string `json:"FormDigestValue"`
		} `json:"GetContextWebInformation"`
	} `json:"d"`
}
