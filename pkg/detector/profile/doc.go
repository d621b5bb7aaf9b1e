// Package profile defines the scoring profile: the single, versioned
// configuration record that carries metric weights, thresholds, directions,
// the combination strategy, and the verdict cutoff.
//
// Profiles load from YAML files or from a git repository, are validated at
// construction time (weighted-sum weights must sum to 1.0), and can be hot
// reloaded through a debounced file watcher. The active profile is swapped
// atomically so concurrent detections never observe a partial update.
package profile
