// Package snapshot persists factory networks. A *core.Graph is flattened
// into a Document (nodes with a kind tag and variant fields, user Manual
// targets, the per-solve fields of the last solve, and edges) which a
// Serializer encodes with a Codec and an optional Compression.
//
// # Formats
//
//	Codec        JSONCodec (encoding/json), MsgPackCodec (vmihailenco/msgpack)
//	Compression  None, Gzip (compress/gzip), Zstd (klauspost/compress)
//
// A loaded graph carries whatever per-solve values were saved. They are
// informational only: flow.Solve resets them before its first round.
//
// # Errors
//
//	ErrUnsupportedVersion  - document version newer than this package.
//	ErrUnknownKind         - node kind tag is not production/gatherer/logistics.
//	ErrUnknownCodec        - CodecByName with an unknown name.
//	ErrUnknownCompression  - ParseCompression with an unknown name.
package snapshot
