// Package natsbridge carries scene-change notifications and redraw requests
// over NATS, for hosts that run in a different process than the Manager.
//
// The host process publishes a JSON SceneEvent on "<prefix>.scene.changed"
// whenever its scene changes and listens for JSON RedrawRequest messages on
// "<prefix>.viewport.redraw". On the manager side, Host wraps a Host that
// provides scene access and replaces its notification and redraw channels
// with NATS subjects:
//
//	nc, _ := nats.Connect(nats.DefaultURL)
//	bridge, err := natsbridge.New(nc, local, natsbridge.Config{Prefix: "studio"})
//	if err != nil {
//	    return err
//	}
//	mgr, err := camlight.NewManager(&cfg, bridge)
package natsbridge
