package natsbridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arloliu/camlight/types"
	"github.com/nats-io/nats.go"
)

// DefaultPrefix is the subject prefix used when Config.Prefix is empty.
const DefaultPrefix = "camlight"

// RedrawRequest is published when the manager asks for a viewport redraw.
type RedrawRequest struct {
	// Sequence increases by one per request of a bridge.
	Sequence uint64 `json:"sequence"`

	// Time is when the request was published.
	Time time.Time `json:"time"`
}

// SceneChangedSubject returns the subject scene-change events are published on.
func SceneChangedSubject(prefix string) string {
	return prefix + ".scene.changed"
}

// RedrawSubject returns the subject redraw requests are published on.
func RedrawSubject(prefix string) string {
	return prefix + ".viewport.redraw"
}

// PublishSceneChanged publishes a scene-change event, as the host process does.
//
// A zero event.Time is set to the current time.
//
// Parameters:
//   - nc: NATS connection of the host process
//   - prefix: Subject prefix shared with the bridge
//   - event: Event to publish
//
// Returns:
//   - error: Encoding or publish error
func PublishSceneChanged(nc *nats.Conn, prefix string, event types.SceneEvent) error {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal scene event: %w", err)
	}

	if err := nc.Publish(SceneChangedSubject(prefix), data); err != nil {
		return fmt.Errorf("failed to publish scene event: %w", err)
	}

	return nil
}

// SubscribeRedraw delivers redraw requests to fn, as the host process does.
//
// Malformed messages are dropped.
//
// Parameters:
//   - nc: NATS connection of the host process
//   - prefix: Subject prefix shared with the bridge
//   - fn: Called for every decoded request, on the NATS callback goroutine
//
// Returns:
//   - *nats.Subscription: Subscription to drain or unsubscribe
//   - error: Subscribe error
func SubscribeRedraw(nc *nats.Conn, prefix string, fn func(RedrawRequest)) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(RedrawSubject(prefix), func(msg *nats.Msg) {
		var req RedrawRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return
		}
		fn(req)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to redraw requests: %w", err)
	}

	return sub, nil
}
