package bundled

import (
	"bytes"
	"net/url"
	"reflect"
	"strings"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/entitytypes"
	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	"golang.org/x/xerrors"
)

var formDataType = reflect.TypeOf(entitytypes.FormData{})
var formDataPtrType = reflect.TypeOf(&entitytypes.FormData{})

func isFormData(valueType reflect.Type) bool {
	return valueType == formDataType || valueType == formDataPtrType
}

// Percent-encodes a single key or value after converting it to charset. Spaces are
// written as %20.
func encodeFormComponent(component string, charset string) (string, error) {
	encoded, err := charsets.Encode(component, charset)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(url.QueryEscape(string(encoded)), "+", "%20"), nil
}

// Reverses encodeFormComponent. Both "+" and %20 decode to a space.
func decodeFormComponent(component string, charset string) (string, error) {
	unescaped, err := url.QueryUnescape(component)
	if err != nil {
		return "", err
	}
	return charsets.Decode([]byte(unescaped), charset)
}

// FormDataWriter writes entitytypes.FormData as application/x-www-form-urlencoded.
type FormDataWriter struct{}

func (writer *FormDataWriter) ContentType() mimetype.ContentType {
	return mimetype.New(mimetype.FORM)
}

func (writer *FormDataWriter) Supports(entityType reflect.Type) bool {
	return isFormData(entityType)
}

// Write encodes every value of every key as a key=value pair, in key order, joined
// with "&". An encoding failure is an error; Write never returns NoResult for FormData.
func (writer *FormDataWriter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	var formData *entitytypes.FormData
	switch typed := entity.(type) {
	case *entitytypes.FormData:
		formData = typed
	case entitytypes.FormData:
		formData = &typed
	default:
		return converter.NoResult[[]byte](), nil
	}

	if formData == nil {
		return converter.Converted([]byte{}), nil
	}

	parts := make([]string, 0, formData.Len())
	var encodeErr error

	formData.Each(func(key string, value string) {
		if encodeErr != nil {
			return
		}

		encodedKey, err := encodeFormComponent(key, charset)
		if err != nil {
			encodeErr = xerrors.Errorf("error encoding form key: %w", err)
			return
		}
		encodedValue, err := encodeFormComponent(value, charset)
		if err != nil {
			encodeErr = xerrors.Errorf("error encoding form value: %w", err)
			return
		}

		parts = append(parts, encodedKey+"="+encodedValue)
	})

	if encodeErr != nil {
		return converter.NoResult[[]byte](), encodeErr
	}

	return converter.Converted([]byte(strings.Join(parts, "&"))), nil
}

// FormDataReader reads application/x-www-form-urlencoded payloads into
// entitytypes.FormData, keeping the order of the pairs.
type FormDataReader struct{}

func (reader *FormDataReader) Supports(targetType reflect.Type) bool {
	return isFormData(targetType)
}

func (reader *FormDataReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	if declinesContentType(contentType, mimetype.FORM) {
		return converter.NoResult[interface{}](), nil
	}

	formData := entitytypes.NewFormData()

	for _, pair := range bytes.Split(entity, []byte("&")) {
		if len(pair) == 0 {
			continue
		}

		keyValue := strings.SplitN(string(pair), "=", 2)
		key, err := decodeFormComponent(keyValue[0], charset)
		if err != nil {
			return converter.NoResult[interface{}](), xerrors.Errorf(
				"error decoding form key: %w", err,
			)
		}

		value := ""
		if len(keyValue) == 2 {
			value, err = decodeFormComponent(keyValue[1], charset)
			if err != nil {
				return converter.NoResult[interface{}](), xerrors.Errorf(
					"error decoding form value: %w", err,
				)
			}
		}

		formData.Add(key, value)
	}

	if targetType == formDataType {
		return converter.Converted[interface{}](*formData), nil
	}
	return converter.Converted[interface{}](formData), nil
}
