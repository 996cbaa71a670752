package converter

import (
	"reflect"

	"github.com/illuscio-dev/httpentities-go/mimetype"
)

// Interface for defining an entity writer.
type EntityWriter interface {
	// ContentType of the payloads this writer produces. The zero value means the content
	// type is unknown and the caller decides.
	ContentType() mimetype.ContentType

	// Supports reports whether entities of entityType can be handed to Write. It must be
	// a cheap, side effect free type check.
	Supports(entityType reflect.Type) bool

	// Write converts entity to bytes using charset, or the writer's default when charset
	// is empty. NoResult hands the entity to the next supporting writer; an error stops
	// conversion.
	Write(entity interface{}, charset string) (Result[[]byte], error)
}

// CharsetIgnorer is implemented by writers whose output carries no character set, such
// as binary formats. The Manager does not add a charset parameter to their content type.
type CharsetIgnorer interface {
	IgnoresCharset() bool
}

// Interface for defining an entity reader.
type EntityReader interface {
	// Supports reports whether the reader can produce values of targetType. It must be
	// a cheap, side effect free type check.
	Supports(targetType reflect.Type) bool

	// Read converts entity into a value of targetType. contentType is the declared
	// content type of the payload and may be unknown; charset is always resolved by the
	// Manager. NoResult hands the payload to the next supporting reader; an error stops
	// conversion. Readers must not modify entity.
	Read(
		targetType reflect.Type,
		entity []byte,
		contentType mimetype.ContentType,
		charset string,
	) (Result[interface{}], error)
}
