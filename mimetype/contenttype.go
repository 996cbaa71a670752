package mimetype

import (
	"strings"
)

// ContentType is a MimeType plus an optional character set, as carried by a
// Content-Type header. The zero value means the content type is unknown.
type ContentType struct {
	MimeType MimeType
	Charset  string
}

// New returns a ContentType for mimeType with no character set.
func New(mimeType MimeType) ContentType {
	return ContentType{MimeType: mimeType}
}

// IsZero reports whether the content type is unknown.
func (contentType ContentType) IsZero() bool {
	return contentType.MimeType == UNKNOWN
}

// WithCharset returns a copy of the content type carrying charset. An empty charset
// removes the parameter.
func (contentType ContentType) WithCharset(charset string) ContentType {
	contentType.Charset = charset
	return contentType
}

// Matches reports whether the mimetype of the content type equals mimeType. Unknown
// content types match nothing.
func (contentType ContentType) Matches(mimeType MimeType) bool {
	if contentType.IsZero() {
		return false
	}
	return contentType.MimeType == mimeType
}

// String renders the content type in its wire format, "type/subtype; charset=name".
// An unknown content type renders as an empty string.
func (contentType ContentType) String() string {
	if contentType.IsZero() {
		return ""
	}
	if contentType.Charset == "" {
		return string(contentType.MimeType)
	}
	return string(contentType.MimeType) + "; charset=" + contentType.Charset
}

/*
Parse reads a Content-Type wire string such as "application/json; charset=UTF-8".

Parsing is lenient: input must be a "type/subtype" pair or a short alias accepted by
FromString such as "json" or "x-yaml". The mimetype is normalised through FromString,
the charset parameter is extracted when present (quotes are stripped), and every other
parameter is ignored. Blank or unparseable input yields an unknown ContentType rather than an error,
since a missing header is a normal condition for a response.
*/
func Parse(incoming string) ContentType {
	parts := strings.Split(incoming, ";")

	mediaType := strings.TrimSpace(parts[0])
	if strings.Count(mediaType, "/") > 1 || strings.ContainsAny(mediaType, " \t") {
		return ContentType{}
	}

	if !isMediaType(mediaType) && !isAlias(mediaType) {
		return ContentType{}
	}

	contentType := ContentType{MimeType: FromString(mediaType)}
	if contentType.IsZero() {
		return contentType
	}

	for _, param := range parts[1:] {
		keyValue := strings.SplitN(strings.TrimSpace(param), "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(keyValue[0]), "charset") {
			contentType.Charset = strings.Trim(strings.TrimSpace(keyValue[1]), `"'`)
		}
	}

	return contentType
}

// Both halves of a "type/subtype" pair are present.
func isMediaType(mediaType string) bool {
	mainType, subType, found := strings.Cut(mediaType, "/")
	return found && mainType != "" && subType != ""
}

// A slash-less string FromString resolves to a default MimeType.
func isAlias(mediaType string) bool {
	if strings.Contains(mediaType, "/") {
		return false
	}
	resolved := FromString(mediaType)
	if resolved == TEXT {
		return true
	}
	for _, mimeType := range suffixMimeTypes {
		if resolved == mimeType {
			return true
		}
	}
	return false
}
