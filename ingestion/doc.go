// Package ingestion turns batches of object-store notifications into
// persisted review records.
//
// The Coordinator handles one batch at a time. For each notification it:
//   - Skips anything that is not an object creation or has no known format
//   - Fetches the object and fingerprints its content
//   - Parses it into records, dropping malformed entries
//   - Allocates an identifier for each record and writes it to the store
//
// Failures are isolated: a file that cannot be fetched or parsed, or a record
// that cannot be written, is logged and counted in the Summary while the rest
// of the batch continues. Nothing is retried by the coordinator itself.
package ingestion
