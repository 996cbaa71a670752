package bundled

import (
	"github.com/illuscio-dev/httpentities-go/converter"
)

// Register installs the default converters on builder.
func Register(builder *converter.Builder) *converter.Builder {
	return builder.
		RegisterWriter(&FormDataWriter{}).
		RegisterWriter(&BytesWriter{}).
		RegisterWriter(&TextWriter{}).
		RegisterWriter(NewJSONWriter()).
		RegisterReader(&FormDataReader{}).
		RegisterReader(&XMLReader{}).
		RegisterReader(&BytesReader{}).
		RegisterReader(&TextReader{}).
		RegisterReader(NewJSONReader())
}

// RegisterYAML installs the YAML writer and reader on builder.
func RegisterYAML(builder *converter.Builder) *converter.Builder {
	return builder.
		RegisterWriter(&YAMLWriter{}).
		RegisterReader(&YAMLReader{})
}

// RegisterBSON installs a BSON converter on builder as both writer and reader.
func RegisterBSON(builder *converter.Builder, codecs ...*BsonCodecOpts) *converter.Builder {
	return builder.RegisterConverter(NewBSONConverter(codecs...))
}

// NewManager returns a Manager with the default converters.
func NewManager(opts ...converter.Option) *converter.Manager {
	return Register(converter.NewBuilder(opts...)).Build()
}
