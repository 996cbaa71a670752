package bundled

import (
	"bytes"
	"reflect"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// JSONExtensionOpts holds options for a json handle extension.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	ExtInterface codec.InterfaceExt
}

// Builds the handle shared by a writer / reader pair. Handles are read-only once built
// and safe for concurrent use.
func newJSONHandle(extensions []*JSONExtensionOpts) (*codec.JsonHandle, error) {
	handle := &codec.JsonHandle{}
	handle.Canonical = true
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	for _, extOpts := range extensions {
		err := handle.SetInterfaceExt(extOpts.ValueType, 1, extOpts.ExtInterface)
		if err != nil {
			return nil, xerrors.Errorf("error adding json extension: %w", err)
		}
	}
	return handle, nil
}

// JSONWriter writes ordered sequences and key-value mappings as application/json.
type JSONWriter struct {
	handle *codec.JsonHandle
}

// NewJSONWriter returns a JSONWriter with no extensions.
func NewJSONWriter() *JSONWriter {
	handle, _ := newJSONHandle(nil)
	return &JSONWriter{handle: handle}
}

// NewJSONWriterWithExtensions returns a JSONWriter whose handle encodes the extension
// types.
func NewJSONWriterWithExtensions(extensions []*JSONExtensionOpts) (*JSONWriter, error) {
	handle, err := newJSONHandle(extensions)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{handle: handle}, nil
}

func (writer *JSONWriter) ContentType() mimetype.ContentType {
	return mimetype.New(mimetype.JSON)
}

func (writer *JSONWriter) Supports(entityType reflect.Type) bool {
	return isCollection(entityType)
}

func (writer *JSONWriter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	buffer := &bytes.Buffer{}
	if err := codec.NewEncoder(buffer, writer.handle).Encode(entity); err != nil {
		return converter.NoResult[[]byte](), xerrors.Errorf("json encode error: %w", err)
	}

	encoded, err := charsets.FromUTF8(buffer.Bytes(), charset)
	if err != nil {
		return converter.NoResult[[]byte](), err
	}
	return converter.Converted(encoded), nil
}

// JSONReader reads application/json payloads into maps, slices and structs.
type JSONReader struct {
	handle *codec.JsonHandle
}

// NewJSONReader returns a JSONReader with no extensions.
func NewJSONReader() *JSONReader {
	handle, _ := newJSONHandle(nil)
	return &JSONReader{handle: handle}
}

// NewJSONReaderWithExtensions returns a JSONReader whose handle decodes the extension
// types.
func NewJSONReaderWithExtensions(extensions []*JSONExtensionOpts) (*JSONReader, error) {
	handle, err := newJSONHandle(extensions)
	if err != nil {
		return nil, err
	}
	return &JSONReader{handle: handle}, nil
}

func (reader *JSONReader) Supports(targetType reflect.Type) bool {
	return isDecodable(targetType)
}

func (reader *JSONReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	if declinesContentType(contentType, mimetype.JSON) {
		return converter.NoResult[interface{}](), nil
	}

	decoded, err := charsets.ToUTF8(entity, charset)
	if err != nil {
		return converter.NoResult[interface{}](), err
	}

	receiver, value := newReceiver(targetType)
	if err := codec.NewDecoderBytes(decoded, reader.handle).Decode(receiver); err != nil {
		return converter.NoResult[interface{}](), xerrors.Errorf("json decode error: %w", err)
	}
	return converter.Converted(value()), nil
}
