package converter

// Result is the outcome of a single conversion attempt: either a converted value or
// "no result", which tells the Manager to try the next candidate converter.
type Result[T any] struct {
	value     T
	converted bool
}

// Converted returns a successful Result holding value.
func Converted[T any](value T) Result[T] {
	return Result[T]{value: value, converted: true}
}

// NoResult returns a Result signalling that the converter matched the type but could
// not convert this entity.
func NoResult[T any]() Result[T] {
	return Result[T]{}
}

// Value returns the converted value and whether conversion succeeded.
func (result Result[T]) Value() (T, bool) {
	return result.value, result.converted
}

// Ok reports whether conversion succeeded.
func (result Result[T]) Ok() bool {
	return result.converted
}
