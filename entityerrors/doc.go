/*
Entity conversion error model and the default conversion error types.

This module defines two main objects for handling errors:

• ErrorType defines a type of error that conversion can return.

• EntityError is an instance of an error which contains an ErrorType.

Default ErrorType Variables

NoWriterFound, NoReaderFound, ConverterFailure and UnsupportedCharset are declared in
this package. An EntityError matches its ErrorType through xerrors.Is / errors.Is:

	if xerrors.Is(err, entityerrors.NoReaderFound) {
		// the payload is still available to the caller
	}
*/
package entityerrors
