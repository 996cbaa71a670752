package bundled

import (
	"reflect"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/mimetype"
)

var byteSliceType = reflect.TypeOf([]byte(nil))

// BytesWriter passes []byte entities through as application/octet-stream. The charset
// is ignored.
type BytesWriter struct{}

func (writer *BytesWriter) ContentType() mimetype.ContentType {
	return mimetype.New(mimetype.BINARY)
}

func (writer *BytesWriter) IgnoresCharset() bool {
	return true
}

func (writer *BytesWriter) Supports(entityType reflect.Type) bool {
	return entityType == byteSliceType
}

func (writer *BytesWriter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	return converter.Converted(entity.([]byte)), nil
}

// BytesReader returns a copy of the raw payload.
type BytesReader struct{}

func (reader *BytesReader) Supports(targetType reflect.Type) bool {
	return targetType == byteSliceType
}

func (reader *BytesReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	return converter.Converted[interface{}](append([]byte{}, entity...)), nil
}
