// Package testing provides test utilities for camlight hosts and integrations.
//
// It follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - ManualScheduler: Scheduler driven by the test, for deterministic retries
//   - StartEmbeddedNATS: In-process NATS server for natsbridge tests
//   - NewTestLogger: Logger writing to the test log
//
// Example usage:
//
//	import (
//	    "testing"
//	    camtest "github.com/arloliu/camlight/testing"
//	)
//
//	func TestDeferredEnable(t *testing.T) {
//	    sched := camtest.NewManualScheduler()
//	    mgr, _ := camlight.NewManager(&cfg, host, camlight.WithScheduler(sched))
//	    mgr.Enable()
//	    sched.Advance(cfg.RetryDelay)
//	}
package testing
