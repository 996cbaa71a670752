package bundled

import (
	"bytes"
	"encoding/binary"
	"reflect"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"golang.org/x/xerrors"
)

// BsonListSepString is a delimiter for top-level bson lists, which bson does not not
// normally support. When multiple documents are being sent in a single payload, the
// unicode SYMBOL FOR RECORD SEPARATOR is used.
// (http://fileformat.info/info/unicode/char/241e/index.htm)
const BsonListSepString = "\u241E"

// BsonListSepBytes is a byte representation of BsonListSepString.
var BsonListSepBytes = []byte(BsonListSepString)

// BsonCodecOpts holds options for registering new BSON codecs with a BSONConverter.
type BsonCodecOpts struct {
	// Type this codec handles encoding / decoding to.
	ValueType reflect.Type

	// Codec to register for this type.
	Codec bsoncodec.ValueCodec
}

var defaultBsonCodecs = []*BsonCodecOpts{
	{
		ValueType: reflect.TypeOf(uuid.UUID{}),
		Codec:     bsonCodecUUID{},
	},
}

// CODECS

// bsonCodecUUID Handles encoding and decoding of UUID to and from bson.
type bsonCodecUUID struct{}

// Encodes uuid value to bson.
func (codec bsonCodecUUID) EncodeValue(
	encodeCTX bsoncodec.EncodeContext,
	valueWriter bsonrw.ValueWriter,
	value reflect.Value,
) error {
	valueUUID, ok := value.Interface().(uuid.UUID)
	if !ok {
		return xerrors.Errorf("bson uuid codec can not encode %s", value.Type())
	}
	return valueWriter.WriteBinaryWithSubtype(valueUUID.Bytes(), 0x3)
}

// Decodes uuid value from bson.
func (codec bsonCodecUUID) DecodeValue(
	decodeCTX bsoncodec.DecodeContext,
	valueReader bsonrw.ValueReader,
	value reflect.Value,
) error {
	bytesUUID, _, err := valueReader.ReadBinary()
	if err != nil {
		return err
	}

	uuidVal, err := uuid.FromBytes(bytesUUID)
	if err != nil {
		return err
	}

	value.Set(reflect.ValueOf(uuidVal))
	return nil
}

var bsonRawType = reflect.TypeOf(bson.Raw{})

/*
BSONConverter writes and reads application/bson payloads. It is both an EntityWriter
and an EntityReader.

Structs, maps and bson.Raw values are written as a single document; slices and arrays
of those are written as one document per element separated by BsonListSepBytes. Reading
into a slice target splits the payload on document boundaries.
*/
type BSONConverter struct {
	registry *bsoncodec.Registry
}

// NewBSONConverter builds a converter whose registry holds the default codecs plus
// codecs.
func NewBSONConverter(codecs ...*BsonCodecOpts) *BSONConverter {
	builder := bson.NewRegistryBuilder()

	for _, codecOpts := range append(append([]*BsonCodecOpts{}, defaultBsonCodecs...), codecs...) {
		builder.RegisterCodec(codecOpts.ValueType, codecOpts.Codec)
	}

	return &BSONConverter{registry: builder.Build()}
}

// Registry returns the bson registry used by the converter.
func (converterBSON *BSONConverter) Registry() *bsoncodec.Registry {
	return converterBSON.registry
}

func (converterBSON *BSONConverter) ContentType() mimetype.ContentType {
	return mimetype.New(mimetype.BSON)
}

// IgnoresCharset reports true, bson strings are always UTF-8.
func (converterBSON *BSONConverter) IgnoresCharset() bool {
	return true
}

// A single document: a struct, a map, or raw bson.
func isBsonDocument(valueType reflect.Type) bool {
	valueType = indirectType(valueType)
	if valueType == nil {
		return false
	}
	if valueType == bsonRawType {
		return true
	}
	return valueType.Kind() == reflect.Struct || valueType.Kind() == reflect.Map
}

// Detects whether content to encode is a sequence (array or slice) of documents.
func isBsonSequence(valueType reflect.Type) bool {
	valueType = indirectType(valueType)
	if valueType == nil || valueType == bsonRawType {
		return false
	}
	if valueType.Kind() != reflect.Slice && valueType.Kind() != reflect.Array {
		return false
	}
	return isBsonDocument(valueType.Elem())
}

// Supports is shared by the writer and reader halves.
func (converterBSON *BSONConverter) Supports(valueType reflect.Type) bool {
	return isBsonDocument(valueType) || isBsonSequence(valueType)
}

func (converterBSON *BSONConverter) encodeSingle(
	writer *bytes.Buffer, content interface{},
) error {
	switch raw := content.(type) {
	case bson.Raw:
		_, err := writer.Write(raw)
		return err
	case *bson.Raw:
		_, err := writer.Write(*raw)
		return err
	}

	marshalled, err := bson.MarshalWithRegistry(converterBSON.registry, content)
	if err != nil {
		return err
	}

	_, err = writer.Write(marshalled)
	return err
}

// Used to encode multiple bson objects to a single payload.
func (converterBSON *BSONConverter) encodeMany(
	writer *bytes.Buffer, content reflect.Value,
) error {
	// We need to know when we are on the final index so if we hit the last item we
	// know that we don't need to write the separator.
	finalIndex := content.Len() - 1

	for arrayIndex := 0; arrayIndex <= finalIndex; arrayIndex++ {
		err := converterBSON.encodeSingle(writer, content.Index(arrayIndex).Interface())
		if err != nil {
			return err
		}

		if arrayIndex != finalIndex {
			if _, err = writer.Write(BsonListSepBytes); err != nil {
				return xerrors.Errorf("error writing document separator: %w", err)
			}
		}
	}
	return nil
}

// Write ignores charset, bson strings are always UTF-8.
func (converterBSON *BSONConverter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	buffer := &bytes.Buffer{}

	var err error
	if isBsonSequence(reflect.TypeOf(entity)) {
		err = converterBSON.encodeMany(buffer, reflect.Indirect(reflect.ValueOf(entity)))
	} else {
		err = converterBSON.encodeSingle(buffer, entity)
	}
	if err != nil {
		return converter.NoResult[[]byte](), xerrors.Errorf("bson encode error: %w", err)
	}

	return converter.Converted(buffer.Bytes()), nil
}

// Splits a payload into its documents using the int32 length prefix of each document,
// skipping the separator between documents.
func splitBsonDocuments(entity []byte) ([][]byte, error) {
	documents := make([][]byte, 0)

	for len(entity) > 0 {
		if len(entity) < 5 {
			return nil, xerrors.New("truncated bson document")
		}

		length := int(int32(binary.LittleEndian.Uint32(entity[:4])))
		if length < 5 || length > len(entity) {
			return nil, xerrors.Errorf("invalid bson document length %d", length)
		}

		documents = append(documents, entity[:length])
		entity = bytes.TrimPrefix(entity[length:], BsonListSepBytes)
	}

	return documents, nil
}

func (converterBSON *BSONConverter) decodeSingle(
	document []byte, receiver interface{},
) error {
	if err := bson.Raw(document).Validate(); err != nil {
		return err
	}
	return bson.UnmarshalWithRegistry(converterBSON.registry, document, receiver)
}

// Read ignores charset, bson strings are always UTF-8.
func (converterBSON *BSONConverter) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	if declinesContentType(contentType, mimetype.BSON) {
		return converter.NoResult[interface{}](), nil
	}

	if targetType == bsonRawType {
		raw := bson.Raw(append([]byte{}, entity...))
		if err := raw.Validate(); err != nil {
			return converter.NoResult[interface{}](), xerrors.Errorf("bson decode error: %w", err)
		}
		return converter.Converted[interface{}](raw), nil
	}

	if !isBsonSequence(targetType) {
		receiver, value := newReceiver(targetType)
		if err := converterBSON.decodeSingle(entity, receiver); err != nil {
			return converter.NoResult[interface{}](), xerrors.Errorf("bson decode error: %w", err)
		}
		return converter.Converted(value()), nil
	}

	documents, err := splitBsonDocuments(entity)
	if err != nil {
		return converter.NoResult[interface{}](), xerrors.Errorf("bson decode error: %w", err)
	}

	sliceType := indirectType(targetType)
	if sliceType.Kind() != reflect.Slice {
		return converter.NoResult[interface{}](), xerrors.Errorf(
			"bson documents can only be read into slices, not %s", sliceType,
		)
	}

	sliceValue := reflect.MakeSlice(sliceType, 0, len(documents))
	for _, document := range documents {
		element := reflect.New(sliceType.Elem())
		if err := converterBSON.decodeSingle(document, element.Interface()); err != nil {
			return converter.NoResult[interface{}](), xerrors.Errorf("bson decode error: %w", err)
		}
		sliceValue = reflect.Append(sliceValue, element.Elem())
	}

	if targetType.Kind() == reflect.Ptr {
		pointer := reflect.New(sliceType)
		pointer.Elem().Set(sliceValue)
		return converter.Converted(pointer.Interface()), nil
	}
	return converter.Converted(sliceValue.Interface()), nil
}
