package natsbridge

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/camlight/internal/logging"
	"github.com/arloliu/camlight/types"
	"github.com/nats-io/nats.go"
)

// Config configures a bridge Host.
type Config struct {
	// Prefix is the subject prefix shared with the host process (default: DefaultPrefix).
	Prefix string `yaml:"prefix"`

	// LocalRedraw also forwards redraw requests to the wrapped Host.
	LocalRedraw bool `yaml:"localRedraw"`

	// Logger receives decode and publish failures (default: no-op).
	Logger types.Logger `yaml:"-"`
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
}

// Host is a types.Host whose notifications and redraws travel over NATS.
//
// Scene access is delegated to the wrapped Host. Subscribers are invoked on
// the NATS callback goroutine, one message at a time per subscriber.
type Host struct {
	inner types.Host
	nc    *nats.Conn
	cfg   Config

	redraws atomic.Uint64
}

// Compile-time assertion that Host implements types.Host.
var _ types.Host = (*Host)(nil)

// New creates a bridge Host.
//
// Parameters:
//   - nc: NATS connection of the manager process
//   - inner: Host providing scene access
//   - cfg: Bridge configuration
//
// Returns:
//   - *Host: Bridge ready to hand to camlight.NewManager
//   - error: When nc or inner is nil
func New(nc *nats.Conn, inner types.Host, cfg Config) (*Host, error) {
	if nc == nil {
		return nil, errors.New("the NATS connection is required")
	}
	if inner == nil {
		return nil, types.ErrHostRequired
	}

	cfg.SetDefaults()

	return &Host{inner: inner, nc: nc, cfg: cfg}, nil
}

// Scene returns the wrapped host's scene.
func (h *Host) Scene() (types.Scene, error) {
	return h.inner.Scene()
}

// Subscribe delivers scene-change events published on the scene subject to sub.
//
// Malformed events are logged and dropped. When the subscription cannot be
// created, the failure is logged and the returned function is a no-op.
//
// Returns:
//   - func(): Unsubscribe function; safe to call more than once
func (h *Host) Subscribe(sub types.SceneSubscriber) func() {
	subject := SceneChangedSubject(h.cfg.Prefix)

	natsSub, err := h.nc.Subscribe(subject, func(msg *nats.Msg) {
		var event types.SceneEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			h.cfg.Logger.Warn("malformed scene event dropped", "subject", msg.Subject, "error", err)
			return
		}
		sub.OnSceneChanged(event)
	})
	if err != nil {
		h.cfg.Logger.Error("failed to subscribe to scene events", "subject", subject, "error", err)
		return func() {}
	}

	// Make sure the server knows the interest before events are published.
	if err := h.nc.Flush(); err != nil {
		h.cfg.Logger.Warn("flush after subscribe failed", "subject", subject, "error", err)
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			if err := natsSub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
				h.cfg.Logger.Warn("failed to unsubscribe from scene events", "subject", subject, "error", err)
			}
		})
	}
}

// RequestRedraw publishes a RedrawRequest on the redraw subject.
//
// Publish failures are logged; the caller is never blocked on the network.
func (h *Host) RequestRedraw() {
	req := RedrawRequest{Sequence: h.redraws.Add(1), Time: time.Now()}

	data, err := json.Marshal(req)
	if err != nil {
		h.cfg.Logger.Error("failed to marshal redraw request", "error", err)
		return
	}

	if err := h.nc.Publish(RedrawSubject(h.cfg.Prefix), data); err != nil {
		h.cfg.Logger.Warn("failed to publish redraw request", "error", err)
	}

	if h.cfg.LocalRedraw {
		h.inner.RequestRedraw()
	}
}

// Redraws returns the number of redraw requests published so far.
func (h *Host) Redraws() uint64 {
	return h.redraws.Load()
}
