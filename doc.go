// Package camlight provides camera-scoped light visibility for scene hosts.
//
// Camlight lets every camera of a scene own a subset of its lights. When the
// active camera changes, only the lights assigned to that camera (plus global
// lights) stay visible in the viewport and in renders. Assignments live in the
// light identifiers themselves, so they survive save and reload without any
// sidecar storage:
//
//	G_Ambient     global, visible for every camera
//	C_01_Fill     assigned to every camera whose ordinal is 01 (e.g. "Camera.001")
//	Key           unassigned, hidden for every camera
//
// # Quick Start
//
//	import "github.com/arloliu/camlight"
//
//	cfg := camlight.DefaultConfig()
//	mgr, err := camlight.NewManager(&cfg, host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mgr.Enable()
//	defer mgr.Disable()
//
//	// Called by the host UI when a light was created while a camera is active.
//	id, err := mgr.OnLightCreated("Spot", camlight.ModeCamera, "Camera.001")
//
// # Architecture
//
// The manager progresses through a state machine:
//
//	UNINITIALIZED → INITIALIZING → READY
//	                      ↓ ↑
//	                   DEFERRED
//
// Enabling while the host environment is restricted defers initialization and
// retries after Config.RetryDelay. Once Ready, every scene-change notification
// is checked for an active camera switch; only real switches re-apply visibility
// and request a viewport redraw. Disable restores the flags captured when the
// manager became Ready.
//
// # Host Integration
//
// Hosts implement the Host and Scene interfaces. The scene package ships an
// in-memory implementation for tests and tools. The natsbridge package carries
// scene-change notifications and redraw requests over NATS for out-of-process
// hosts.
//
// # Thread Safety
//
// All Manager methods are safe for concurrent use. Hooks run after the manager
// released its lock and may call back into it.
//
// # Observability
//
// Structured logging via the Logger interface (log/slog adapter in
// internal/logging) and Prometheus metrics via NewPrometheusMetrics.
package camlight
