package converter_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/entityerrors"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
)

type Name struct {
	First string
	Last  string
}

// Writer with scripted behaviour used to observe selection.
type FakeWriter struct {
	contentType mimetype.ContentType
	supported   reflect.Type
	output      string
	noResult    bool
	err         error
	panics      bool
	calls       int32
	charsets    []string
	lock        sync.Mutex
}

func (writer *FakeWriter) ContentType() mimetype.ContentType {
	return writer.contentType
}

func (writer *FakeWriter) Supports(entityType reflect.Type) bool {
	return entityType == writer.supported
}

func (writer *FakeWriter) Write(
	entity interface{}, charset string,
) (converter.Result[[]byte], error) {
	atomic.AddInt32(&writer.calls, 1)
	writer.lock.Lock()
	writer.charsets = append(writer.charsets, charset)
	writer.lock.Unlock()

	if writer.panics {
		panic(xerrors.New("write panicked"))
	}
	if writer.err != nil {
		return converter.NoResult[[]byte](), writer.err
	}
	if writer.noResult {
		return converter.NoResult[[]byte](), nil
	}
	return converter.Converted([]byte(writer.output + fmt.Sprint(entity))), nil
}

// Reader with scripted behaviour used to observe selection.
type FakeReader struct {
	supported reflect.Type
	value     interface{}
	noResult  bool
	err       error
	panics    bool
	calls     int32
	seen      []mimetype.ContentType
	charsets  []string
}

func (reader *FakeReader) Supports(targetType reflect.Type) bool {
	return targetType == reader.supported
}

func (reader *FakeReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charset string,
) (converter.Result[interface{}], error) {
	atomic.AddInt32(&reader.calls, 1)
	reader.seen = append(reader.seen, contentType)
	reader.charsets = append(reader.charsets, charset)

	if reader.panics {
		panic("read panicked")
	}
	if reader.err != nil {
		return converter.NoResult[interface{}](), reader.err
	}
	if reader.noResult {
		return converter.NoResult[interface{}](), nil
	}
	return converter.Converted(reader.value), nil
}

var stringType = reflect.TypeOf("")
var nameType = reflect.TypeOf(Name{})

func TestWriteUsesDeclaredContentType(test *testing.T) {
	assert := assert.New(test)

	writer := &FakeWriter{
		contentType: mimetype.New(mimetype.TEXT),
		supported:   stringType,
		output:      "text:",
	}
	manager := converter.NewBuilder().RegisterWriter(writer).Build()

	payload, err := manager.Write("hello", "")
	assert.NoError(err)
	assert.Equal([]byte("text:hello"), payload.Bytes)
	assert.Equal(mimetype.New(mimetype.TEXT), payload.ContentType)
	assert.Equal("text/plain", payload.ContentType.String())
}

func TestWriteAppendsCharset(test *testing.T) {
	assert := assert.New(test)

	writer := &FakeWriter{
		contentType: mimetype.New(mimetype.TEXT),
		supported:   stringType,
	}
	manager := converter.NewBuilder().RegisterWriter(writer).Build()

	payload, err := manager.Write("hello", "ISO-8859-1")
	assert.NoError(err)
	assert.Equal("text/plain; charset=ISO-8859-1", payload.ContentType.String())
	assert.Equal([]string{"ISO-8859-1"}, writer.charsets)
}

// Writer whose output carries no character set.
type BinaryFakeWriter struct {
	*FakeWriter
}

func (writer BinaryFakeWriter) IgnoresCharset() bool {
	return true
}

func TestWriteCharsetIgnorer(test *testing.T) {
	assert := assert.New(test)

	writer := BinaryFakeWriter{&FakeWriter{
		contentType: mimetype.New(mimetype.BINARY),
		supported:   stringType,
	}}
	manager := converter.NewBuilder().RegisterWriter(writer).Build()

	payload, err := manager.Write("hello", "UTF-8")
	assert.NoError(err)
	assert.Equal("application/octet-stream", payload.ContentType.String())
	assert.Equal([]string{"UTF-8"}, writer.charsets)
}

func TestWriteUnknownContentType(test *testing.T) {
	assert := assert.New(test)

	writer := &FakeWriter{supported: stringType}
	manager := converter.NewBuilder().RegisterWriter(writer).Build()

	payload, err := manager.Write("hello", "UTF-8")
	assert.NoError(err)
	assert.True(payload.ContentType.IsZero())
}

func TestWriteSkipsUnsupportedWriters(test *testing.T) {
	assert := assert.New(test)

	skipped := &FakeWriter{supported: nameType, output: "name:"}
	used := &FakeWriter{supported: stringType, output: "string:"}
	manager := converter.NewBuilder().
		RegisterWriter(skipped).
		RegisterWriter(used).
		Build()

	payload, err := manager.Write("value", "")
	assert.NoError(err)
	assert.Equal("string:value", string(payload.Bytes))
	assert.Equal(int32(0), skipped.calls)
}

func TestWriteFallsBackOnNoResult(test *testing.T) {
	assert := assert.New(test)

	first := &FakeWriter{
		contentType: mimetype.New(mimetype.JSON),
		supported:   stringType,
		noResult:    true,
	}
	second := &FakeWriter{
		contentType: mimetype.New(mimetype.TEXT),
		supported:   stringType,
		output:      "second:",
	}
	third := &FakeWriter{supported: stringType, output: "third:"}

	manager := converter.NewBuilder().
		RegisterWriter(first).
		RegisterWriter(second).
		RegisterWriter(third).
		Build()

	payload, err := manager.Write("value", "")
	assert.NoError(err)
	assert.Equal("second:value", string(payload.Bytes))
	assert.Equal(mimetype.New(mimetype.TEXT), payload.ContentType)
	assert.Equal(int32(1), first.calls)
	assert.Equal(int32(1), second.calls)
	assert.Equal(int32(0), third.calls)
}

func TestWriteRegistrationOrderIsPrecedence(test *testing.T) {
	assert := assert.New(test)

	first := &FakeWriter{supported: stringType, output: "first:"}
	second := &FakeWriter{supported: stringType, output: "second:"}

	forward := converter.NewBuilder().RegisterWriter(first).RegisterWriter(second).Build()
	backward := converter.NewBuilder().RegisterWriter(second).RegisterWriter(first).Build()

	payload, err := forward.Write("x", "")
	assert.NoError(err)
	assert.Equal("first:x", string(payload.Bytes))

	payload, err = backward.Write("x", "")
	assert.NoError(err)
	assert.Equal("second:x", string(payload.Bytes))
}

func TestNoWriterFound(test *testing.T) {
	assert := assert.New(test)

	writer := &FakeWriter{supported: nameType}
	manager := converter.NewBuilder().RegisterWriter(writer).Build()

	payload, err := manager.Write(42, "")
	assert.Nil(payload)
	assert.True(xerrors.Is(err, entityerrors.NoWriterFound))
	assert.Equal(int32(0), writer.calls)

	entityErr, ok := entityerrors.AsEntityError(err)
	assert.True(ok)
	assert.Equal("int", entityErr.ErrorData["entityType"])
}

func TestNoWriterFoundAllNoResult(test *testing.T) {
	first := &FakeWriter{supported: stringType, noResult: true}
	second := &FakeWriter{supported: stringType, noResult: true}
	manager := converter.NewBuilder().RegisterWriter(first).RegisterWriter(second).Build()

	_, err := manager.Write("x", "")
	assert.True(test, xerrors.Is(err, entityerrors.NoWriterFound))
	assert.Equal(test, int32(1), first.calls)
	assert.Equal(test, int32(1), second.calls)
}

func TestNoWriterFoundNilEntity(test *testing.T) {
	manager := converter.NewBuilder().
		RegisterWriter(&FakeWriter{supported: stringType}).
		Build()

	_, err := manager.Write(nil, "")
	assert.EqualError(
		test, err, "NoWriterFound (2000) - no entity writer converted <nil>",
	)
}

func TestWriterErrorIsNotFallback(test *testing.T) {
	assert := assert.New(test)

	failing := &FakeWriter{supported: stringType, err: xerrors.New("encoding unsupported")}
	next := &FakeWriter{supported: stringType}
	manager := converter.NewBuilder().RegisterWriter(failing).RegisterWriter(next).Build()

	_, err := manager.Write("x", "")
	assert.True(xerrors.Is(err, entityerrors.ConverterFailure))
	assert.Contains(err.Error(), "failed to convert string")
	assert.EqualError(xerrors.Unwrap(err), "encoding unsupported")
	assert.Equal(int32(0), next.calls)
}

func TestWriterPanicIsNotFallback(test *testing.T) {
	assert := assert.New(test)

	panicky := &FakeWriter{supported: stringType, panics: true}
	next := &FakeWriter{supported: stringType}
	manager := converter.NewBuilder().RegisterWriter(panicky).RegisterWriter(next).Build()

	_, err := manager.Write("x", "")
	assert.True(xerrors.Is(err, entityerrors.ConverterFailure))
	assert.EqualError(xerrors.Unwrap(err), "panic during write: write panicked")
	assert.Equal(int32(0), next.calls)
}

func TestReadFallsBackOnNoResult(test *testing.T) {
	assert := assert.New(test)

	first := &FakeReader{supported: nameType, noResult: true}
	second := &FakeReader{supported: nameType, value: Name{First: "Harry", Last: "Potter"}}
	third := &FakeReader{supported: nameType, value: Name{First: "Ron"}}
	manager := converter.NewBuilder().
		RegisterReader(first).
		RegisterReader(second).
		RegisterReader(third).
		Build()

	value, err := manager.Read([]byte("{}"), "application/json", "", nameType)
	assert.NoError(err)
	assert.Equal(Name{First: "Harry", Last: "Potter"}, value)
	assert.Equal(int32(1), first.calls)
	assert.Equal(int32(0), third.calls)
}

func TestReadPassesContentTypeAndCharset(test *testing.T) {
	assert := assert.New(test)

	reader := &FakeReader{supported: stringType, value: "ok"}
	manager := converter.NewBuilder(converter.WithDefaultCharset("US-ASCII")).
		RegisterReader(reader).
		Build()

	_, err := manager.Read(nil, "application/json; charset=ISO-8859-1", "", stringType)
	assert.NoError(err)
	_, err = manager.Read(nil, "application/json; charset=ISO-8859-1", "UTF-16", stringType)
	assert.NoError(err)
	_, err = manager.Read(nil, "", "", stringType)
	assert.NoError(err)
	_, err = manager.Read(nil, "not a type", "", stringType)
	assert.NoError(err)

	assert.Equal([]string{"ISO-8859-1", "UTF-16", "US-ASCII", "US-ASCII"}, reader.charsets)
	assert.Equal(mimetype.JSON, reader.seen[0].MimeType)
	assert.True(reader.seen[2].IsZero())
	assert.True(reader.seen[3].IsZero())
	assert.Equal("US-ASCII", manager.DefaultCharset())
}

func TestNoReaderFoundKeepsPayload(test *testing.T) {
	assert := assert.New(test)

	reader := &FakeReader{supported: stringType, value: "ok"}
	manager := converter.NewBuilder().RegisterReader(reader).Build()

	payload := []byte(`{"First":"Harry"}`)
	original := append([]byte(nil), payload...)

	value, err := manager.Read(payload, "application/json", "", nameType)
	assert.Nil(value)
	assert.True(xerrors.Is(err, entityerrors.NoReaderFound))
	assert.Equal(original, payload)
	assert.Equal(int32(0), reader.calls)

	entityErr, _ := entityerrors.AsEntityError(err)
	assert.Equal("converter_test.Name", entityErr.ErrorData["targetType"])
	assert.Equal("application/json", entityErr.ErrorData["contentType"])
}

func TestNoReaderFoundNilTarget(test *testing.T) {
	manager := converter.NewBuilder().Build()

	_, err := manager.Read([]byte("x"), "", "", nil)
	assert.EqualError(
		test,
		err,
		"NoReaderFound (2001) - no entity reader converted payload of unknown "+
			"content type to <nil>",
	)
}

func TestReaderErrorIsNotFallback(test *testing.T) {
	assert := assert.New(test)

	failing := &FakeReader{supported: nameType, err: xerrors.New("malformed")}
	next := &FakeReader{supported: nameType, value: Name{}}
	manager := converter.NewBuilder().RegisterReader(failing).RegisterReader(next).Build()

	_, err := manager.Read([]byte("x"), "", "", nameType)
	assert.True(xerrors.Is(err, entityerrors.ConverterFailure))
	assert.EqualError(xerrors.Unwrap(err), "malformed")
	assert.Equal(int32(0), next.calls)
}

func TestReaderPanicIsNotFallback(test *testing.T) {
	panicky := &FakeReader{supported: nameType, panics: true}
	manager := converter.NewBuilder().RegisterReader(panicky).Build()

	_, err := manager.Read([]byte("x"), "", "", nameType)
	assert.True(test, xerrors.Is(err, entityerrors.ConverterFailure))
	assert.EqualError(test, xerrors.Unwrap(err), "panic during read: read panicked")
}

func TestReaderWrongTypeFails(test *testing.T) {
	reader := &FakeReader{supported: nameType, value: "not a name"}
	manager := converter.NewBuilder().RegisterReader(reader).Build()

	_, err := manager.Read([]byte("x"), "", "", nameType)
	assert.True(test, xerrors.Is(err, entityerrors.ConverterFailure))
	assert.Contains(test, xerrors.Unwrap(err).Error(), "not assignable")
}

func TestReadAs(test *testing.T) {
	assert := assert.New(test)

	reader := &FakeReader{supported: nameType, value: Name{First: "Harry"}}
	manager := converter.NewBuilder().RegisterReader(reader).Build()

	name, err := converter.ReadAs[Name](manager, []byte("x"), "", "")
	assert.NoError(err)
	assert.Equal("Harry", name.First)

	_, err = converter.ReadAs[string](manager, []byte("x"), "", "")
	assert.True(xerrors.Is(err, entityerrors.NoReaderFound))
}

func TestReadAsInterfaceTarget(test *testing.T) {
	stringerType := converter.TypeOf[fmt.Stringer]()
	reader := &FakeReader{supported: stringerType, value: &bytes.Buffer{}}
	manager := converter.NewBuilder().RegisterReader(reader).Build()

	value, err := converter.ReadAs[fmt.Stringer](manager, nil, "", "")
	assert.NoError(test, err)
	assert.NotNil(test, value)
}

func TestBuildFreezesRegistry(test *testing.T) {
	assert := assert.New(test)

	first := &FakeWriter{supported: stringType, output: "first:"}
	builder := converter.NewBuilder().RegisterWriter(first)
	manager := builder.Build()

	builder.RegisterWriter(&FakeWriter{supported: nameType})
	builder.RegisterReader(&FakeReader{supported: nameType})

	assert.Len(manager.Writers(), 1)
	assert.Len(manager.Readers(), 0)
	assert.Len(builder.Build().Writers(), 2)

	// Mutating the returned copy must not reach the manager.
	writers := manager.Writers()
	writers[0] = &FakeWriter{supported: stringType, output: "other:"}
	payload, err := manager.Write("x", "")
	assert.NoError(err)
	assert.Equal("first:x", string(payload.Bytes))
}

func TestRegisterNilIgnored(test *testing.T) {
	manager := converter.NewBuilder().RegisterWriter(nil).RegisterReader(nil).Build()
	assert.Len(test, manager.Writers(), 0)
	assert.Len(test, manager.Readers(), 0)
}

func TestZeroManager(test *testing.T) {
	assert := assert.New(test)

	manager := &converter.Manager{}
	assert.Equal(converter.DefaultCharset, manager.DefaultCharset())

	_, err := manager.Write("x", "")
	assert.True(xerrors.Is(err, entityerrors.NoWriterFound))
}

func TestFallbackIsLogged(test *testing.T) {
	assert := assert.New(test)

	output := &bytes.Buffer{}
	logger := zerolog.New(output).Level(zerolog.DebugLevel)

	manager := converter.NewBuilder(converter.WithLogger(logger)).
		RegisterWriter(&FakeWriter{supported: stringType, noResult: true}).
		RegisterWriter(&FakeWriter{supported: stringType}).
		Build()

	_, err := manager.Write("x", "")
	assert.NoError(err)
	assert.Contains(output.String(), "entity writer returned no result")
	assert.Contains(output.String(), `"entity_type":"string"`)
}

func TestConcurrentWrites(test *testing.T) {
	assert := assert.New(test)

	declined := &FakeWriter{supported: stringType, noResult: true}
	names := &FakeWriter{supported: nameType, output: "name:"}
	strs := &FakeWriter{supported: stringType, output: "string:"}
	manager := converter.NewBuilder().
		RegisterWriter(declined).
		RegisterWriter(names).
		RegisterWriter(strs).
		Build()

	const workers = 64
	results := make([]string, workers)
	errs := make([]error, workers)

	waitGroup := sync.WaitGroup{}
	for index := 0; index < workers; index++ {
		waitGroup.Add(1)
		go func(index int) {
			defer waitGroup.Done()

			var entity interface{} = fmt.Sprintf("v%d", index)
			if index%2 == 0 {
				entity = Name{First: fmt.Sprintf("n%d", index)}
			}

			payload, err := manager.Write(entity, "")
			errs[index] = err
			if err == nil {
				results[index] = string(payload.Bytes)
			}
		}(index)
	}
	waitGroup.Wait()

	for index := 0; index < workers; index++ {
		assert.NoError(errs[index])
		if index%2 == 0 {
			assert.True(strings.HasPrefix(results[index], "name:"), results[index])
			assert.Contains(results[index], fmt.Sprintf("n%d", index))
		} else {
			assert.Equal(fmt.Sprintf("string:v%d", index), results[index])
		}
	}
	assert.Equal(int32(workers/2), declined.calls)
	assert.Equal(int32(workers/2), names.calls)
	assert.Equal(int32(workers/2), strs.calls)
}
