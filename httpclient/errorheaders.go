package httpclient

import (
	"github.com/illuscio-dev/httpentities-go/entityerrors"
)

// ErrorHeaderFilter is a ResponseFilter that turns an error carried in the error-*
// response headers into an *entityerrors.EntityError returned from Client.Do. The
// response body is left untouched.
type ErrorHeaderFilter struct {
	// Index resolves error codes. Nil uses entityerrors.ErrorTypeCodeIndex.
	Index map[int]*entityerrors.ErrorType
}

func (filter *ErrorHeaderFilter) FilterResponse(response *Response) error {
	entityError, hasError, err := entityerrors.FromHeaders(response.Header, filter.Index)
	if !hasError {
		return nil
	}
	if err != nil {
		return err
	}
	return entityError
}
