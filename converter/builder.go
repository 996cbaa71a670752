package converter

import (
	"github.com/rs/zerolog"
)

// DefaultCharset is used to read payloads that declare no character set.
const DefaultCharset = "UTF-8"

// Option configures a Builder.
type Option func(builder *Builder)

// WithLogger sets the logger used by the built Manager. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(builder *Builder) {
		builder.logger = logger
	}
}

// WithDefaultCharset sets the character set used to read payloads that declare none.
func WithDefaultCharset(charset string) Option {
	return func(builder *Builder) {
		if charset != "" {
			builder.defaultCharset = charset
		}
	}
}

/*
Builder collects converters at construction time. Converters are appended in call order,
and that order is the precedence order of the Manager built from it.

A Builder is not safe for concurrent use. Build may be called more than once; every
Manager it returns holds its own copy of the registries.
*/
type Builder struct {
	writers        []EntityWriter
	readers        []EntityReader
	logger         zerolog.Logger
	defaultCharset string
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	builder := &Builder{
		logger:         zerolog.Nop(),
		defaultCharset: DefaultCharset,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder
}

// Register a writer after all previously registered writers.
func (builder *Builder) RegisterWriter(writer EntityWriter) *Builder {
	if writer != nil {
		builder.writers = append(builder.writers, writer)
	}
	return builder
}

// Register a reader after all previously registered readers.
func (builder *Builder) RegisterReader(reader EntityReader) *Builder {
	if reader != nil {
		builder.readers = append(builder.readers, reader)
	}
	return builder
}

// Register a value that is both a writer and a reader in both registries.
func (builder *Builder) RegisterConverter(converter interface {
	EntityWriter
	EntityReader
}) *Builder {
	return builder.RegisterWriter(converter).RegisterReader(converter)
}

// Build freezes the registered converters into a Manager.
func (builder *Builder) Build() *Manager {
	return &Manager{
		writers:        append([]EntityWriter(nil), builder.writers...),
		readers:        append([]EntityReader(nil), builder.readers...),
		logger:         builder.logger,
		defaultCharset: builder.defaultCharset,
	}
}
