/*
Reference entity converters and the default registration order.

Default Converters

Register installs, in order:

Writers: FormDataWriter, BytesWriter, TextWriter, JSONWriter

Readers: FormDataReader, XMLReader, BytesReader, TextReader, JSONReader

The YAML and BSON converters claim the same shapes as the JSON ones, so they are not
installed by Register. Add them with RegisterYAML / RegisterBSON before or after Register
depending on which format should win for maps and slices.

Content Type Checks

Structured readers return NoResult when the declared content type is known and belongs
to another format, which lets several readers claim the same target type and have the
payload land on the right one. A payload with no declared content type is attempted by
the first supporting reader. Malformed payloads are errors, not fallback signals.

JSON

JSON is handled with the codec library (https://godoc.org/github.com/ugorji/go/codec).
Map keys are written in sorted order so payloads are deterministic.

XML

XML documents are parsed into *etree.Document trees (https://github.com/beevik/etree).
DTDs are kept as directives and never resolved; external entities are not fetched.

BSON

BSON is handled through the official driver (https://godoc.org/go.mongodb.org/mongo-driver).
UUIDs from "github.com/satori/go.uuid" are written as binary subtype 0x3. Slices are
written as multiple documents separated by BsonListSepString.
*/
package bundled
