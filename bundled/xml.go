package bundled

import (
	"bytes"
	"reflect"

	"github.com/beevik/etree"
	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/illuscio-dev/httpentities-go/mimetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/xerrors"
)

var xmlDocumentType = reflect.TypeOf(&etree.Document{})

// XMLReader parses payloads into navigable *etree.Document trees. Parsing is strict,
// DTDs are not resolved and external entities are never fetched.
type XMLReader struct{}

func (reader *XMLReader) Supports(targetType reflect.Type) bool {
	return targetType == xmlDocumentType
}

// Reports whether the payload starts with an xml declaration naming its encoding, in
// which case the parser transcodes it and the declared charset is not applied.
func declaresXMLEncoding(entity []byte) bool {
	trimmed := bytes.TrimLeft(entity, " \t\r\n\ufeff")
	if !bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return false
	}
	end := bytes.Index(trimmed, []byte("?>"))
	if end < 0 {
		return false
	}
	return bytes.Contains(trimmed[:end], []byte("encoding"))
}

func (reader *XMLReader) Read(
	targetType reflect.Type,
	entity []byte,
	contentType mimetype.ContentType,
	charsetName string,
) (converter.Result[interface{}], error) {
	if declinesContentType(contentType, mimetype.XML) {
		return converter.NoResult[interface{}](), nil
	}

	if !declaresXMLEncoding(entity) {
		decoded, err := charsets.ToUTF8(entity, charsetName)
		if err != nil {
			return converter.NoResult[interface{}](), err
		}
		entity = decoded
	}

	document := etree.NewDocument()
	document.ReadSettings.CharsetReader = charset.NewReaderLabel
	document.ReadSettings.Permissive = false

	if err := document.ReadFromBytes(entity); err != nil {
		return converter.NoResult[interface{}](), xerrors.Errorf("xml decode error: %w", err)
	}
	if document.Root() == nil {
		return converter.NoResult[interface{}](), xerrors.New("xml decode error: no root element")
	}

	return converter.Converted[interface{}](document), nil
}
