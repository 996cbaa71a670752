// Package charsets resolves character set names and transcodes between UTF-8 and the
// declared character set of a payload.
package charsets

import (
	"strings"

	"github.com/illuscio-dev/httpentities-go/entityerrors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is used when no character set is given.
const Default = "UTF-8"

// IsUTF8 reports whether name denotes UTF-8. An empty name is UTF-8.
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// Lookup returns the encoding registered with IANA under name. Unknown and unsupported
// names fail with entityerrors.UnsupportedCharset.
func Lookup(name string) (encoding.Encoding, error) {
	if IsUTF8(name) {
		return unicode.UTF8, nil
	}

	found, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
	if err != nil || found == nil {
		return nil, entityerrors.UnsupportedCharset.New(
			"unsupported character set "+name,
			map[string]interface{}{"charset": name},
			err,
		)
	}
	return found, nil
}

// Encode converts UTF-8 text to bytes in the named character set. Text that can not be
// represented in the character set is an error.
func Encode(text string, name string) ([]byte, error) {
	if IsUTF8(name) {
		return []byte(text), nil
	}
	return FromUTF8([]byte(text), name)
}

// FromUTF8 transcodes UTF-8 bytes into the named character set.
func FromUTF8(data []byte, name string) ([]byte, error) {
	if IsUTF8(name) {
		return data, nil
	}

	found, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return found.NewEncoder().Bytes(data)
}

// ToUTF8 transcodes bytes in the named character set into UTF-8. The input slice is
// never modified.
func ToUTF8(data []byte, name string) ([]byte, error) {
	if IsUTF8(name) {
		return data, nil
	}

	found, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return found.NewDecoder().Bytes(data)
}

// Decode converts bytes in the named character set to a UTF-8 string.
func Decode(data []byte, name string) (string, error) {
	decoded, err := ToUTF8(data, name)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
