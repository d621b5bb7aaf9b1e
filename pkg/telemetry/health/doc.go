// Package health provides liveness and readiness probes for the Veritas
// service.
//
// The liveness probe only confirms the process is running. The readiness
// probe runs registered component checks concurrently with a per-check
// timeout and reports 503 while any component is unhealthy. The service
// registers the scoring profile store (via ReadyCheck) and, when auditing
// is enabled, the audit storage backend (via PingCheck).
//
// Usage:
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("profile", health.ReadyCheck(store))
//	checker.RegisterCheck("audit", health.PingCheck(storage))
//
//	mux.HandleFunc("/health", checker.LivenessHandler())
//	mux.HandleFunc("/ready", checker.ReadinessHandler())
//	mux.HandleFunc("/version", health.VersionHandler(version, commit, buildTime))
package health
