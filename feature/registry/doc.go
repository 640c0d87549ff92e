// Package registry implements the local aircraft registry read path.
//
// The registry is the FAA releasable-database pair of delimited text files: a
// master file keyed by tail registration (N-number) and a reference file keyed
// by a manufacturer/model code. Lookups stream the files line by line, so
// memory use is bounded by line length rather than file size, and stop at the
// first matching record.
//
// # Pipeline of a lookup
//
//  1. The query key is normalized (uppercase, BOM/quote/punctuation stripped).
//  2. The result cache is consulted; concurrent misses for the same key are
//     coalesced into one scan.
//  3. A scan permit is taken from the gate, bounding simultaneous file reads.
//  4. The master file is scanned for the key; if the record carries a
//     manufacturer/model code, the reference file is scanned for it.
//  5. Manufacturer and model come from the reference record when one exists,
//     falling back to the kit-built fields inlined on the master record.
//
// File schemas are re-detected from the header row on every scan, falling back
// to the fixed positional layout of the published registry format when no
// header is recognized, so column drift between dataset refreshes is picked up
// without a restart.
package registry
