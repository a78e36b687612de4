/*
Package amf3 decodes and encodes AMF3, the compact binary format used to exchange
typed values with script runtimes over sockets, shared objects and host calls.

Values

A message is a sequence of values. Each value starts with a one-byte marker followed
by its payload. The types package defines the tree a message decodes to: undefined,
null, booleans, 29-bit integers, doubles, strings, dates and arrays. An array has an
associative part, pairs of non-empty string keys and values kept in wire order, and a
dense part indexed from 0.

	values, err := amf3.DecodeMessage(data)
	...
	data, err := amf3.EncodeMessage(values)

References

Within one message, strings, dates and arrays that were already sent can be sent again
as an index into a reference table. Tables live for a single call to Decode or Encode and
are never shared, so independent messages can be processed concurrently without
synchronization, see DecodeBatch.

By default the decoder resolves references: repeated strings decode to equal strings,
repeated dates and arrays decode to the same pointer. Setting Options.KeepReferences
returns types.ReferenceValue nodes instead. The encoder writes a reference whenever a
string with the same content, or the very same *types.DateValue or *types.ArrayValue,
was already written in the message.

Untrusted input

Decoding never panics. Nesting depth, dense counts and string lengths are bounded by
Options, and every error is terminal for the message: a reference table that is out of
sync with the wire invalidates every value that follows.
*/
package amf3
