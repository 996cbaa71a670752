package converter

import (
	"fmt"
	"reflect"

	"github.com/illuscio-dev/httpentities-go/entityerrors"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Payload is the wire-level representation of a converted entity.
type Payload struct {
	// Converted bytes.
	Bytes []byte
	// Content type declared by the writer that produced Bytes. Unknown when the writer
	// does not declare one.
	ContentType mimetype.ContentType
}

// Manager selects converters from its frozen registries. Create one with
// Builder.Build; the zero value has no converters.
type Manager struct {
	writers        []EntityWriter
	readers        []EntityReader
	logger         zerolog.Logger
	defaultCharset string
}

// Writers returns a copy of the writer registry in precedence order.
func (manager *Manager) Writers() []EntityWriter {
	return append([]EntityWriter(nil), manager.writers...)
}

// Readers returns a copy of the reader registry in precedence order.
func (manager *Manager) Readers() []EntityReader {
	return append([]EntityReader(nil), manager.readers...)
}

// DefaultCharset is the character set used to read payloads that declare none.
func (manager *Manager) DefaultCharset() string {
	if manager.defaultCharset == "" {
		return DefaultCharset
	}
	return manager.defaultCharset
}

// Invokes a writer while catching panics to return as errors.
func safeWrite(
	writer EntityWriter, entity interface{}, charset string,
) (result Result[[]byte], err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = panicError("write", recovered)
		}
	}()

	return writer.Write(entity, charset)
}

// Invokes a reader while catching panics to return as errors.
func safeRead(
	reader EntityReader,
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (result Result[interface{}], err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = panicError("read", recovered)
		}
	}()

	return reader.Read(targetType, entity, contentType, charset)
}

func panicError(operation string, recovered interface{}) error {
	if recoveredErr, ok := recovered.(error); ok {
		return xerrors.Errorf("panic during %s: %w", operation, recoveredErr)
	}
	return xerrors.Errorf("panic during %s: %v", operation, recovered)
}

func ignoresCharset(writer EntityWriter) bool {
	ignorer, ok := writer.(CharsetIgnorer)
	return ok && ignorer.IgnoresCharset()
}

func typeName(valueType reflect.Type) string {
	if valueType == nil {
		return "<nil>"
	}
	return valueType.String()
}

/*
Write converts entity with the first registered writer that supports its runtime type
and returns the converted payload.

charset is passed to the writer unchanged. When it is not empty and the writer declares
a content type, the charset is appended to the returned content type unless the writer
implements CharsetIgnorer and reports that it ignores charsets.

Write fails with entityerrors.NoWriterFound when no writer both supports and converts
the entity, and with entityerrors.ConverterFailure as soon as a writer errors.
*/
func (manager *Manager) Write(entity interface{}, charset string) (*Payload, error) {
	entityType := reflect.TypeOf(entity)

	if entity != nil {
		for _, writer := range manager.writers {
			if !writer.Supports(entityType) {
				continue
			}

			result, err := safeWrite(writer, entity, charset)
			if err != nil {
				manager.logger.Warn().
					Err(err).
					Str("writer", fmt.Sprintf("%T", writer)).
					Str("entity_type", typeName(entityType)).
					Msg("entity writer failed")
				return nil, entityerrors.ConverterFailure.New(
					fmt.Sprintf("writer %T failed to convert %s", writer, typeName(entityType)),
					map[string]interface{}{
						"writer":     fmt.Sprintf("%T", writer),
						"entityType": typeName(entityType),
					},
					err,
				)
			}

			converted, ok := result.Value()
			if !ok {
				manager.logger.Debug().
					Str("writer", fmt.Sprintf("%T", writer)).
					Str("entity_type", typeName(entityType)).
					Msg("entity writer returned no result")
				continue
			}

			contentType := writer.ContentType()
			if !contentType.IsZero() && charset != "" && !ignoresCharset(writer) {
				contentType = contentType.WithCharset(charset)
			}

			return &Payload{Bytes: converted, ContentType: contentType}, nil
		}
	}

	return nil, entityerrors.NoWriterFound.New(
		"no entity writer converted "+typeName(entityType),
		map[string]interface{}{"entityType": typeName(entityType)},
		nil,
	)
}

// Picks the charset to read a payload with: the explicit argument, then the charset
// declared with the content type, then the manager default.
func (manager *Manager) pickCharset(
	contentType mimetype.ContentType, charset string,
) string {
	if charset != "" {
		return charset
	}
	if contentType.Charset != "" {
		return contentType.Charset
	}
	return manager.DefaultCharset()
}

/*
Read converts entity into a value of targetType with the first registered reader that
supports targetType and returns the converted value.

contentType is the declared Content-Type wire string and may be empty or unparseable, in
which case readers receive an unknown content type. The entity slice is handed to readers
as is and is never consumed, so the caller keeps the payload when Read fails.

Read fails with entityerrors.NoReaderFound when no reader both supports and converts the
payload, and with entityerrors.ConverterFailure as soon as a reader errors or returns a
value that is not of targetType.
*/
func (manager *Manager) Read(
	entity []byte, contentType string, charset string, targetType reflect.Type,
) (interface{}, error) {
	declared := mimetype.Parse(contentType)
	charset = manager.pickCharset(declared, charset)

	if targetType != nil {
		for _, reader := range manager.readers {
			if !reader.Supports(targetType) {
				continue
			}

			result, err := safeRead(reader, targetType, entity, declared, charset)
			if err == nil {
				err = checkReadType(result, targetType)
			}
			if err != nil {
				manager.logger.Warn().
					Err(err).
					Str("reader", fmt.Sprintf("%T", reader)).
					Str("target_type", typeName(targetType)).
					Str("content_type", declared.String()).
					Msg("entity reader failed")
				return nil, entityerrors.ConverterFailure.New(
					fmt.Sprintf("reader %T failed to read %s", reader, typeName(targetType)),
					map[string]interface{}{
						"reader":      fmt.Sprintf("%T", reader),
						"targetType":  typeName(targetType),
						"contentType": declared.String(),
					},
					err,
				)
			}

			value, ok := result.Value()
			if !ok {
				manager.logger.Debug().
					Str("reader", fmt.Sprintf("%T", reader)).
					Str("target_type", typeName(targetType)).
					Str("content_type", declared.String()).
					Msg("entity reader returned no result")
				continue
			}

			return value, nil
		}
	}

	source := declared.String()
	if source == "" {
		source = "payload of unknown content type"
	}

	return nil, entityerrors.NoReaderFound.New(
		"no entity reader converted "+source+" to "+typeName(targetType),
		map[string]interface{}{
			"targetType":  typeName(targetType),
			"contentType": declared.String(),
		},
		nil,
	)
}

// A reader must hand back a value of the requested type, or an untyped nil.
func checkReadType(result Result[interface{}], targetType reflect.Type) error {
	value, ok := result.Value()
	if !ok || value == nil {
		return nil
	}
	if valueType := reflect.TypeOf(value); !valueType.AssignableTo(targetType) {
		return xerrors.Errorf(
			"reader returned %s, which is not assignable to %s",
			valueType, targetType,
		)
	}
	return nil
}

// ReadAs is Read with the target type taken from T.
func ReadAs[T any](
	manager *Manager, entity []byte, contentType string, charset string,
) (T, error) {
	var zero T

	value, err := manager.Read(entity, contentType, charset, TypeOf[T]())
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
