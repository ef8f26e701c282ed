// Package project holds the in-memory project document and its on-disk
// serialization.
//
// The document is deliberately shallow: sequences, media references, and the
// active sequence. Timeline, effect, and codec details belong to other
// subsystems and travel as opaque attributes. FileSerializer writes JSON
// atomically; read and write failures are tagged failure.ErrIO and malformed
// content failure.ErrDeserialize.
package project
