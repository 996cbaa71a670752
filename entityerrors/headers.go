package entityerrors

import (
	"strconv"

	uuid "github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// Header names used to carry an EntityError on an HTTP message.
const (
	HeaderErrorName    = "error-name"
	HeaderErrorCode    = "error-code"
	HeaderErrorMessage = "error-message"
	HeaderErrorID      = "error-id"
	HeaderErrorData    = "error-data"
)

// Interface for object that can set header information.
type headerSetter interface {
	Set(key string, value string)
}

type headerFetcher interface {
	Get(key string) string
}

var errorDataHandle = &codec.JsonHandle{}

// ToHeader writes the error to an object which implements a Set(key string, value
// string) method like http.Header. ErrorData is written as JSON.
func (entityError *EntityError) ToHeader(setter headerSetter) error {
	setter.Set(HeaderErrorName, entityError.name)
	setter.Set(HeaderErrorCode, strconv.Itoa(entityError.code))
	setter.Set(HeaderErrorMessage, entityError.Message)
	setter.Set(HeaderErrorID, entityError.ID.String())

	if entityError.ErrorData != nil {
		var encoded []byte
		err := codec.NewEncoderBytes(&encoded, errorDataHandle).Encode(entityError.ErrorData)
		if err != nil {
			return xerrors.Errorf("error data could not be encoded: %w", err)
		}
		setter.Set(HeaderErrorData, string(encoded))
	}

	return nil
}

/*
FromHeaders rebuilds an EntityError written by ToHeader. Codes are resolved against
errorTypeCodeIndex; a nil index uses ErrorTypeCodeIndex.

If the headers carry no error code, hasError is false and err says no error was found.
If an error code is present but the header data is malformed or the code is unknown,
hasError is true and err describes the problem.
*/
func FromHeaders(
	headers headerFetcher, errorTypeCodeIndex map[int]*ErrorType,
) (entityError *EntityError, hasError bool, err error) {
	errorCodeStr := headers.Get(HeaderErrorCode)
	if errorCodeStr == "" {
		return nil, false, xerrors.New("no error in headers")
	}

	errorCode, err := strconv.Atoi(errorCodeStr)
	if err != nil {
		return nil, false, xerrors.New("error-code not int")
	}

	if errorTypeCodeIndex == nil {
		errorTypeCodeIndex = ErrorTypeCodeIndex
	}
	errorType, ok := errorTypeCodeIndex[errorCode]
	if !ok {
		return nil, true, xerrors.New("no known error for code " + errorCodeStr)
	}

	errorID, err := uuid.FromString(headers.Get(HeaderErrorID))
	if err != nil {
		return nil, true, xerrors.New("error id is not valid UUID")
	}

	var errorData map[string]interface{}
	if errorDataStr := headers.Get(HeaderErrorData); errorDataStr != "" {
		err := codec.NewDecoderBytes([]byte(errorDataStr), errorDataHandle).Decode(&errorData)
		if err != nil {
			return nil, true, xerrors.New("error data could not be parsed as JSON")
		}
	}

	entityError = errorType.New(headers.Get(HeaderErrorMessage), errorData, nil)
	entityError.ID = errorID

	return entityError, true, nil
}
