package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// gracePeriod is how long in-flight requests get to finish after a
// termination signal before the server is torn down.
const gracePeriod = 10 * time.Second

// ListenForSignalsAndShutdown blocks until SIGINT or SIGTERM, then drains
// the HTTP server. In-flight vote transactions either commit or roll back
// with the connection; nothing is left half-applied.
func ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	fmt.Println("\nShutdown signal received, draining connections...")

	ctx, cancel := context.WithTimeout(context.Background(), gracePeriod)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Printf("Forced shutdown after grace period: %v\n", err)
		return
	}
	fmt.Println("Server stopped cleanly.")
}
