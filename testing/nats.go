package testing

import (
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// StartEmbeddedNATS starts an embedded NATS server for testing.
//
// The server runs in-process on a random available port, so parallel tests
// never collide. Server and connection are shut down via t.Cleanup().
//
// Parameters:
//   - t: Testing context for logging and cleanup
//
// Returns:
//   - *server.Server: The embedded NATS server instance
//   - *nats.Conn: Connected NATS client (closed automatically on test completion)
//
// Example:
//
//	func TestBridge(t *testing.T) {
//	    _, nc := camtest.StartEmbeddedNATS(t)
//	    host := natsbridge.New(nc, inner, natsbridge.Config{Prefix: "studio"})
//	}
func StartEmbeddedNATS(t *testing.T) (*server.Server, *nats.Conn) {
	t.Helper()

	ns := startServer(t)

	nc, err := nats.Connect(ns.ClientURL(),
		nats.Timeout(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(3),
	)
	if err != nil {
		ns.Shutdown()
		t.Fatalf("Failed to connect to embedded NATS server: %v", err)
	}

	// Register cleanup handlers (executed in reverse order)
	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	return ns, nc
}

// Connect opens an additional client connection to ns, closed on test completion.
//
// Useful to play the remote side of a bridge with its own connection.
func Connect(t *testing.T, ns *server.Server) *nats.Conn {
	t.Helper()

	nc, err := nats.Connect(ns.ClientURL(), nats.Timeout(2*time.Second))
	if err != nil {
		t.Fatalf("Failed to connect to embedded NATS server: %v", err)
	}
	t.Cleanup(nc.Close)

	return nc
}

func startServer(t *testing.T) *server.Server {
	t.Helper()

	opts := &server.Options{
		Host:    "127.0.0.1",
		Port:    -1,    // Use random available port
		LogFile: "",    // Disable file logging
		Debug:   false, // Disable debug output
		Trace:   false, // Disable trace output
		NoLog:   true,  // Suppress all server logs in tests
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		t.Fatalf("Failed to create embedded NATS server: %v", err)
	}

	// Start server in background goroutine
	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("Embedded NATS server not ready within timeout")
	}

	return ns
}
