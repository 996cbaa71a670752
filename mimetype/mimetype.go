// Enumeration-like type for content mimetypes, and the ContentType value that pairs a
// mimetype with its character set on the wire.
package mimetype

import (
	"strings"
)

/*
MimeType is used to enumerate the default representation for entity content types.
Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")
*/
type MimeType string

const (
	JSON   = MimeType("application/json")
	XML    = MimeType("application/xml")
	BSON   = MimeType("application/bson")
	YAML   = MimeType("application/yaml")
	FORM   = MimeType("application/x-www-form-urlencoded")
	BINARY = MimeType("application/octet-stream")
	TEXT   = MimeType("text/plain")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// List of default mimeTypes that are matched by their subtype suffix, so vendor and
// "x-" prefixed variants resolve to the same value.
var suffixMimeTypes = []MimeType{JSON, XML, BSON, YAML, FORM}

// Interface for object used to set headers such as http.Request.Header or
// http.Response.Header
type headerFetcher interface {
	Get(string) string
}

// Extract content type from a message / request header.
func FromHeader(headers headerFetcher) ContentType {
	return Parse(headers.Get("Content-Type"))
}

/*
Convert MimeType from a string. Ignores case and any parameters. If the MimeType is a
default type, multiple formats are respected. For instance, all of the following will
yield "mimetype.JSON":

• "application/json"

• "application/JSON"

• "application/x-json"

• "json"

• "x-json"
*/
func FromString(incoming string) MimeType {
	if index := strings.Index(incoming, ";"); index >= 0 {
		incoming = incoming[:index]
	}
	incoming = strings.ToLower(strings.TrimSpace(incoming))

	if incoming == "" {
		return UNKNOWN
	}
	if incoming == "text/plain" || incoming == "text" {
		return TEXT
	}
	if incoming == "text/xml" {
		return XML
	}

	for _, mimeType := range suffixMimeTypes {
		subType := strings.Split(string(mimeType), "/")[1]
		subType = strings.TrimPrefix(subType, "x-")
		if strings.HasSuffix(incoming, subType) {
			return mimeType
		}
	}

	return MimeType(incoming)
}
