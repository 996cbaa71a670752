package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Client sends requests and returns responses with their bodies read in full.
type Client struct {
	config          Config
	defaultHeaders  http.Header
	manager         *converter.Manager
	requestFilters  []RequestFilter
	responseFilters []ResponseFilter
	logger          zerolog.Logger
	httpClient      *http.Client
}

/*
Do runs the request filters, converts request.Entity, sends the request and reads the
response body.

Conversion happens before any network I/O. A conversion failure is returned as is, so
xerrors.Is(err, entityerrors.NoWriterFound) reports an entity no writer could convert.
The Content-Type header is taken from the writer unless the request already sets one.

A response filter error is returned along with the response.
*/
func (client *Client) Do(ctx context.Context, request Request) (*Response, error) {
	request.Header = request.Header.Clone()
	if request.Header == nil {
		request.Header = http.Header{}
	}

	for _, filter := range client.requestFilters {
		if err := filter.FilterRequest(&request); err != nil {
			return nil, xerrors.Errorf("request filter: %w", err)
		}
	}

	httpRequest, err := client.buildRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	client.logger.Debug().
		Str("method", httpRequest.Method).
		Str("url", httpRequest.URL.String()).
		Str("content_type", httpRequest.Header.Get("Content-Type")).
		Msg("sending request")

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		client.logger.Error().
			Err(err).
			Str("method", httpRequest.Method).
			Str("url", httpRequest.URL.String()).
			Msg("request failed")
		return nil, xerrors.Errorf("error sending request: %w", err)
	}
	defer func() { _ = httpResponse.Body.Close() }()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, xerrors.Errorf("error reading response body: %w", err)
	}

	response := &Response{
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Entity:     body,
		manager:    client.manager,
	}

	client.logger.Debug().
		Int("status", response.StatusCode).
		Str("content_type", response.Header.Get("Content-Type")).
		Int("length", len(body)).
		Msg("received response")

	for _, filter := range client.responseFilters {
		if err := filter.FilterResponse(response); err != nil {
			return response, xerrors.Errorf("response filter: %w", err)
		}
	}

	return response, nil
}

func (client *Client) resolveURL(path string) string {
	if client.config.BaseURL == "" ||
		strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(client.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (client *Client) buildRequest(ctx context.Context, request Request) (*http.Request, error) {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	contentType := ""
	if request.Entity != nil {
		charset := request.Charset
		if charset == "" {
			charset = client.config.Charset
		}

		payload, err := client.manager.Write(request.Entity, charset)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload.Bytes)
		contentType = payload.ContentType.String()
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, client.resolveURL(request.Path), body)
	if err != nil {
		return nil, xerrors.Errorf("error creating request: %w", err)
	}

	if len(request.Query) > 0 {
		query := httpRequest.URL.Query()
		for key, values := range request.Query {
			query[key] = append(query[key], values...)
		}
		httpRequest.URL.RawQuery = query.Encode()
	}

	for key, values := range client.defaultHeaders {
		httpRequest.Header[key] = append([]string{}, values...)
	}
	for key, values := range request.Header {
		httpRequest.Header[http.CanonicalHeaderKey(key)] = append([]string{}, values...)
	}

	if contentType != "" && httpRequest.Header.Get("Content-Type") == "" {
		httpRequest.Header.Set("Content-Type", contentType)
	}

	return httpRequest, nil
}
