// Pluggable conversion of HTTP entities to and from application objects.
/*
The converter package decouples the representation of request and response bodies from
their transport. A Manager owns two ordered registries, one of EntityWriter values and
one of EntityReader values, and picks a converter for every call.

Selection

Writers are tried in registration order. A writer is only invoked when its Supports
predicate accepts the runtime type of the entity. The first writer that returns a
Converted result wins; a writer that returns NoResult passes the entity to the next
supporting writer. Readers follow the same rules against the requested target type.

Registration order is the only tie-break. There is no ranking by content type, so two
readers that claim the same target type (a lenient and a strict JSON reader, say) are
ordered by whoever builds the Manager.

Errors

When no converter both supports and converts, Write fails with
entityerrors.NoWriterFound and Read with entityerrors.NoReaderFound. A converter that
returns an error or panics stops the call with entityerrors.ConverterFailure; errors are
never treated as a fallback signal.

Concurrency

A Manager is frozen when Build returns it. Converters are stateless, so a single Manager
may serve any number of goroutines without locking.
*/
package converter
