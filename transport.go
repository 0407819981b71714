package sharepoint

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout             = 30 * time.Second
	defaultIdleConnTimeout     = 50 * time.Second
	defaultMaxResponseBodySize = 100 * 1024 * 1024
)

type defaultTransport struct {
	client              http.Client
	maxResponseBodySize int64
}

func newDefaultTransport(options ConnectOptions) (Transport, error) {
	httpTransport := options.HTTPTransport
	if httpTransport == nil {
		var err error
		httpTransport, err = buildHTTPTransport(options)
		if err != nil {
			return nil, err
		}
	}

	timeout := options.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &defaultTransport{
		client: http.Client{
			Transport: httpTransport,
			Timeout:   timeout,
		},
		maxResponseBodySize: options.MaxResponseBodySize,
	}, nil
}

func buildHTTPTransport(options ConnectOptions) (*http.Transport, error) {
	if len(options.Certificates) == 0 {
		return &http.Transport{
			IdleConnTimeout: defaultIdleConnTimeout,
		}, nil
	}

	certificates := make([]tls.Certificate, 0, len(options.Certificates))
	caCertPool := x509.NewCertPool()

	for _, certConfig := range options.Certificates {
		ok := caCertPool.AppendCertsFromPEM([]byte(certConfig.Cert))
		if !ok {
			return nil, fmt.Errorf("failed to append certificate to pool")
		}

		cert, err := tls.X509KeyPair([]byte(certConfig.Cert), []byte(certConfig.Key))
		if err != nil {
			return nil, fmt.Errorf("failed to load X509 key pair: %w", err)
		}

		certificates = append(certificates, cert)
	}

	return &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:            caCertPool,
			Certificates:       certificates,
			InsecureSkipVerify: options.InsecureSkipVerify,
		},
		IdleConnTimeout: defaultIdleConnTimeout,
	}, nil
}

func (t *defaultTransport) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	header := make(http.Header, len(headers))
	for key, value := range headers {
		header[key] = []string{value}
	}
	httpReq.Header = header

	httpRes, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}

	defer httpRes.Body.Close()

	maxSize := t.maxResponseBodySize
	if maxSize <= 0 {
		maxSize = defaultMaxResponseBodySize
	}

	limitedReader := io.LimitReader(httpRes.Body, maxSize)
	resBody, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}

	if int64(len(resBody)) >= maxSize {
		var oneByte [1]byte
		n, _ := httpRes.Body.Read(oneByte[:])
		if n > 0 {
			return nil, fmt.Errorf("response body exceeded maximum size of %d bytes", maxSize)
		}
	}

	res := &Response{
		StatusCode: httpRes.StatusCode,
		Data:       resBody,
		Headers:    httpRes.Header,
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode >= 300 {
		return nil, &ResponseError{Response: res}
	}

	return res, nil
}
