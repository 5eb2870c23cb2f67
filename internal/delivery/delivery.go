// Package delivery defines the contract every transport-level server fulfills.
package delivery

import "context"

// Delivery is a serving entry point (HTTP server, background worker) managed
// by the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
