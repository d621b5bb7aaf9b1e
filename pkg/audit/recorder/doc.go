// Package recorder provides the async write path from analysis results to
// audit storage.
//
// A Recorder owns a buffered channel and a single background worker. The
// analysis handler builds a record with NewRecord (hashing the text on the
// spot) and enqueues it with Record; the worker writes it to storage under
// a per-write timeout. A full buffer drops the record rather than block
// the request, and every write outcome is reported to the Observer for
// metrics.
//
// Close drains the channel so no accepted record is lost on a clean
// shutdown.
package recorder
