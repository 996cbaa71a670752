package entityerrors

// No registered writer both supports the type of an entity and converts it.
var NoWriterFound = NewErrorType("NoWriterFound", 2000)

// No registered reader both supports the requested type and parses the payload.
var NoReaderFound = NewErrorType("NoReaderFound", 2001)

// A converter failed in a way that is not a fallback signal: it returned an error or
// panicked. Conversion stops on this error.
var ConverterFailure = NewErrorType("ConverterFailure", 2002)

// The requested character set is not known.
var UnsupportedCharset = NewErrorType("UnsupportedCharset", 2003)

// List of default ErrorType definitions.
var ErrorList = [4]*ErrorType{
	NoWriterFound,
	NoReaderFound,
	ConverterFailure,
	UnsupportedCharset,
}

// Used to make ErrorTypeCodeIndex.
func makeDefaultErrorCodeIndex() map[int]*ErrorType {
	index := make(map[int]*ErrorType)
	for _, errorType := range ErrorList {
		index[errorType.code] = errorType
	}
	return index
}

// Code:*ErrorType indexing of default errors.
var ErrorTypeCodeIndex = makeDefaultErrorCodeIndex()
