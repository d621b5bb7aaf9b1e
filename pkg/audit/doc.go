// Package audit provides a durable trail of analysis verdicts.
//
// # Overview
//
// Every completed analysis can be recorded as an audit Record: the verdict,
// confidence, raw metric values, and the scoring profile that produced them,
// keyed by a SHA-256 hash of the submitted text. The text itself never
// reaches storage, so the trail can be kept long-term without retaining
// student writing.
//
// # Architecture
//
//	detector.Result
//	      |
//	      v
//	recorder.Recorder  -- async channel -->  worker  -->  audit.Storage
//	                                                          |
//	                          retention.Pruner  <--  cron  ---+
//
// Records are written asynchronously so analysis latency never depends on
// storage. When the write buffer is full the record is dropped and counted:
// the trail is best-effort and never blocks a verdict.
//
// # Subpackages
//
//   - recorder: async write path from analysis results to storage
//   - storage: memory and SQLite backends
//   - retention: scheduled pruning by age and record count
package audit
