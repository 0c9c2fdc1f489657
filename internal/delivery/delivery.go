// Package delivery holds the inbound adapters that expose the use cases.
package delivery

import "context"

// Delivery is a long-running inbound adapter such as the HTTP API.
// Serve blocks until the adapter stops; shutdown is driven by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
