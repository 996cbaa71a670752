package bundled

import (
	"reflect"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// YAMLWriter writes collections and structs as application/yaml.
type YAMLWriter struct{}

func (writer *YAMLWriter) ContentType() mimetype.ContentType {
	return mimetype.New(mimetype.YAML)
}

func (writer *YAMLWriter) Supports(entityType reflect.Type) bool {
	return isCollection(entityType) || indirectType(entityType).Kind() == reflect.Struct
}

func (writer *YAMLWriter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	marshalled, err := yaml.Marshal(entity)
	if err != nil {
		return converter.NoResult[[]byte](), xerrors.Errorf("yaml encode error: %w", err)
	}

	encoded, err := charsets.FromUTF8(marshalled, charset)
	if err != nil {
		return converter.NoResult[[]byte](), err
	}
	return converter.Converted(encoded), nil
}

// YAMLReader reads application/yaml payloads into maps, slices and structs.
type YAMLReader struct{}

func (reader *YAMLReader) Supports(targetType reflect.Type) bool {
	return isDecodable(targetType)
}

func (reader *YAMLReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	if declinesContentType(contentType, mimetype.YAML) {
		return converter.NoResult[interface{}](), nil
	}

	decoded, err := charsets.ToUTF8(entity, charset)
	if err != nil {
		return converter.NoResult[interface{}](), err
	}

	receiver, value := newReceiver(targetType)
	if err := yaml.Unmarshal(decoded, receiver); err != nil {
		return converter.NoResult[interface{}](), xerrors.Errorf("yaml decode error: %w", err)
	}
	return converter.Converted(value()), nil
}
