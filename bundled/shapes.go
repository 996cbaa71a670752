package bundled

import (
	"reflect"

	"github.com/illuscio-dev/httpentities-go/mimetype"
)

// Follows pointers down to the first non pointer type.
func indirectType(valueType reflect.Type) reflect.Type {
	for valueType != nil && valueType.Kind() == reflect.Ptr {
		valueType = valueType.Elem()
	}
	return valueType
}

// Ordered sequences and key-value mappings.
func isCollection(valueType reflect.Type) bool {
	valueType = indirectType(valueType)
	if valueType == nil {
		return false
	}
	switch valueType.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// Types owned by a dedicated reader. Structured decoders would fill them with nothing.
func isCapabilityType(valueType reflect.Type) bool {
	return isFormData(valueType) || valueType == xmlDocumentType ||
		valueType == xmlDocumentType.Elem()
}

// A struct a decoder can populate through at least one exported or embedded field.
func hasSettableField(structType reflect.Type) bool {
	for index := 0; index < structType.NumField(); index++ {
		field := structType.Field(index)
		if field.IsExported() || field.Anonymous {
			return true
		}
	}
	return false
}

// Shapes that structured decoders can fill: collections, and structs or pointers to
// structs with settable fields.
func isDecodable(valueType reflect.Type) bool {
	if valueType == nil || isCapabilityType(valueType) {
		return false
	}
	if valueType.Kind() == reflect.Ptr {
		elem := valueType.Elem()
		return elem.Kind() == reflect.Struct && hasSettableField(elem)
	}
	switch valueType.Kind() {
	case reflect.Slice, reflect.Map:
		return true
	case reflect.Struct:
		return hasSettableField(valueType)
	}
	return false
}

// A reader for mimeType declines payloads that declare a different, known type.
func declinesContentType(contentType mimetype.ContentType, mimeType mimetype.MimeType) bool {
	return !contentType.IsZero() && contentType.MimeType != mimeType
}

// Allocates a receiver for targetType and returns it along with a function that yields
// the decoded value of targetType.
func newReceiver(targetType reflect.Type) (interface{}, func() interface{}) {
	if targetType.Kind() == reflect.Ptr {
		receiver := reflect.New(targetType.Elem())
		return receiver.Interface(), receiver.Interface
	}

	receiver := reflect.New(targetType)
	return receiver.Interface(), func() interface{} { return receiver.Elem().Interface() }
}
