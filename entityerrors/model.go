package entityerrors

import (
	"fmt"
	"runtime/debug"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

/*
ErrorType defines a TYPE of error that conversion CAN return.

Each ErrorType should have a unique Name and Code. Codes 2000-2999 are reserved for the
default definitions in this package.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through functions. Define new error types using NewErrorType()
*/
type ErrorType struct {
	// Unique human-readable name of the error type.
	name string

	// Unique number to identify the error type.
	code int
}

// Returns an error type definition. Each definition should only need to be declared
// once.
func NewErrorType(name string, code int) *ErrorType {
	return &ErrorType{
		name: name,
		code: code,
	}
}

// Returns a new entity error of this type.
func (errorType *ErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *EntityError {
	return &EntityError{
		ErrorType:   errorType,
		Message:     message,
		ID:          uuid.NewV4(),
		ErrorData:   errorData,
		sourceErr:   source,
		sourceStack: debug.Stack(),
		frame:       xerrors.Caller(1),
	}
}

// Unique human-readable name of the error type.
func (errorType *ErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type.
func (errorType *ErrorType) Code() int {
	return errorType.code
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *ErrorType) Error() string {
	return errorType.name + " (" + strconv.Itoa(errorType.code) + ")"
}

// Used to return a specific error instance.
type EntityError struct {
	// The type of error we are returning.
	*ErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// A string / any mapping of data related to the error, such as the runtime type of
	// the entity or the declared content type.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is stored
	// here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType.
func (entityError *EntityError) IsType(errorType *ErrorType) bool {
	return entityError.ErrorType.code == errorType.code &&
		entityError.ErrorType.name == errorType.name
}

// Error string to conform to builtin error interface.
func (entityError *EntityError) Error() string {
	return entityError.ErrorType.Error() + " - " + entityError.Message
}

// Is lets xerrors.Is / errors.Is match an instance against its type definition.
func (entityError *EntityError) Is(target error) bool {
	switch typed := target.(type) {
	case *ErrorType:
		return entityError.IsType(typed)
	case *EntityError:
		return entityError.ID == typed.ID
	}
	return false
}

// Implements xerrors.Wrapper.
func (entityError *EntityError) Unwrap() error {
	return entityError.sourceErr
}

// Format prints the error with its caller frame when formatted with "%+v".
func (entityError *EntityError) Format(state fmt.State, verb rune) {
	xerrors.FormatError(entityError, state, verb)
}

// FormatError implements xerrors.Formatter.
func (entityError *EntityError) FormatError(printer xerrors.Printer) error {
	printer.Print(entityError.Error())
	entityError.frame.Format(printer)
	return entityError.sourceErr
}

// More verbose error message that includes a debug.Stack() and source error
// information. This is not part of the Error(), Message, or ErrorData by default since
// it is intended for logs only.
func (entityError *EntityError) LogMessage() string {
	return fmt.Sprint(
		"\nMESSAGE: ",
		entityError.Error(),
		"\nORIGINAL: ",
		entityError.sourceErr,
		"\nSTACK:\n",
		string(entityError.sourceStack),
	)
}

// AsEntityError returns the first EntityError in the chain of err, if any.
func AsEntityError(err error) (*EntityError, bool) {
	var entityError *EntityError
	if xerrors.As(err, &entityError) {
		return entityError, true
	}
	return nil, false
}
