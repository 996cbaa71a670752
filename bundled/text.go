package bundled

import (
	"fmt"
	"reflect"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/illuscio-dev/httpentities-go/mimetype"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// TextWriter writes strings, string pointers and fmt.Stringer values as text/plain.
type TextWriter struct{}

func (writer *TextWriter) ContentType() mimetype.ContentType {
	return mimetype.New(mimetype.TEXT)
}

func (writer *TextWriter) Supports(entityType reflect.Type) bool {
	return entityType.Implements(stringerType) ||
		indirectType(entityType).Kind() == reflect.String
}

// Text of a Stringer, a string, or a non-nil pointer to a string.
func textOf(entity interface{}) (string, bool) {
	if stringer, ok := entity.(fmt.Stringer); ok {
		return stringer.String(), true
	}

	value := reflect.ValueOf(entity)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return "", false
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.String {
		return "", false
	}
	return value.String(), true
}

// Write returns NoResult for a nil string pointer.
func (writer *TextWriter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	text, ok := textOf(entity)
	if !ok {
		return converter.NoResult[[]byte](), nil
	}

	encoded, err := charsets.Encode(text, charset)
	if err != nil {
		return converter.NoResult[[]byte](), err
	}
	return converter.Converted(encoded), nil
}

// TextReader reads any payload into a string, or a named string type.
type TextReader struct{}

func (reader *TextReader) Supports(targetType reflect.Type) bool {
	return targetType.Kind() == reflect.String
}

func (reader *TextReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	text, err := charsets.Decode(entity, charset)
	if err != nil {
		return converter.NoResult[interface{}](), err
	}
	return converter.Converted(reflect.ValueOf(text).Convert(targetType).Interface()), nil
}
