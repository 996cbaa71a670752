package charsets_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"testing"

	"github.com/illuscio-dev/httpentities-go/entityerrors"
	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
)

func TestIsUTF8(test *testing.T) {
	assert := assert.New(test)

	assert.True(charsets.IsUTF8(""))
	assert.True(charsets.IsUTF8("utf-8"))
	assert.True(charsets.IsUTF8(" UTF8 "))
	assert.False(charsets.IsUTF8("ISO-8859-1"))
}

func TestLatin1RoundTrip(test *testing.T) {
	assert := assert.New(test)

	encoded, err := charsets.Encode("café", "ISO-8859-1")
	assert.NoError(err)
	assert.Equal([]byte{'c', 'a', 'f', 0xe9}, encoded)

	decoded, err := charsets.Decode(encoded, "iso-8859-1")
	assert.NoError(err)
	assert.Equal("café", decoded)
}

func TestUTF16(test *testing.T) {
	assert := assert.New(test)

	encoded, err := charsets.Encode("hi", "UTF-16BE")
	assert.NoError(err)
	assert.Equal([]byte{0, 'h', 0, 'i'}, encoded)
}

func TestUTF8Passthrough(test *testing.T) {
	data := []byte("plain")
	decoded, err := charsets.ToUTF8(data, "")
	assert.NoError(test, err)
	assert.Equal(test, data, decoded)
}

func TestUnsupportedCharset(test *testing.T) {
	assert := assert.New(test)

	_, err := charsets.Encode("x", "NOT-A-CHARSET")
	assert.True(xerrors.Is(err, entityerrors.UnsupportedCharset))

	_, err = charsets.Decode([]byte("x"), "NOT-A-CHARSET")
	assert.True(xerrors.Is(err, entityerrors.UnsupportedCharset))
}

func TestUnrepresentableText(test *testing.T) {
	_, err := charsets.Encode("日本", "ISO-8859-1")
	assert.Error(test, err)
}
