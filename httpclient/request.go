package httpclient

import (
	"net/http"
	"net/url"
	"reflect"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/mimetype"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	Method string
	// Path is appended to the configured BaseURL. Can be a full URL.
	Path string
	// Header holds request-specific headers, merged over the configured defaults.
	Header http.Header
	// Query holds URL query parameters.
	Query url.Values
	// Entity is converted to the request body. Nil sends no body.
	Entity interface{}
	// Charset overrides the configured charset for this request.
	Charset string
}

// Response is the result of an HTTP request. Entity holds the full response body.
type Response struct {
	StatusCode int
	Header     http.Header
	Entity     []byte

	manager *converter.Manager
}

// IsSuccess reports whether the status code is 2xx.
func (response *Response) IsSuccess() bool {
	return response.StatusCode >= 200 && response.StatusCode < 300
}

// ContentType returns the parsed Content-Type header of the response.
func (response *Response) ContentType() mimetype.ContentType {
	return mimetype.FromHeader(response.Header)
}

// Read converts the response body into a value of targetType. The charset declared
// with the Content-Type header is used when present.
func (response *Response) Read(targetType reflect.Type) (interface{}, error) {
	return response.ReadWithCharset(targetType, "")
}

// ReadWithCharset is Read with an explicit charset that overrides the Content-Type
// header. Entity is left untouched whether or not the read succeeds.
func (response *Response) ReadWithCharset(
	targetType reflect.Type, charset string,
) (interface{}, error) {
	return response.manager.Read(
		response.Entity, response.Header.Get("Content-Type"), charset, targetType,
	)
}

// ReadEntity converts the response body into a T.
func ReadEntity[T any](response *Response) (T, error) {
	return converter.ReadAs[T](
		response.manager, response.Entity, response.Header.Get("Content-Type"), "",
	)
}
