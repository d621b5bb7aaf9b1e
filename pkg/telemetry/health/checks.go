package health

import (
	"context"
	"errors"
)

// ReadyReporter is implemented by components that can report readiness
// synchronously, such as the scoring profile store.
type ReadyReporter interface {
	Ready() bool
}

// Pinger is implemented by storage backends that can verify connectivity,
// such as the audit trail database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrNotReady is reported by ReadyCheck when the component is not ready.
var ErrNotReady = errors.New("component not ready")

// ReadyCheck adapts a ReadyReporter into a CheckFunc.
//
//	checker.RegisterCheck("profile", health.ReadyCheck(store))
func ReadyCheck(r ReadyReporter) CheckFunc {
	return func(ctx context.Context) error {
		if !r.Ready() {
			return ErrNotReady
		}
		return nil
	}
}

// PingCheck adapts a Pinger into a CheckFunc.
//
//	checker.RegisterCheck("audit", health.PingCheck(storage))
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		return p.Ping(ctx)
	}
}
