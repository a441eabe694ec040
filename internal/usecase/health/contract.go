package health

import "context"

// Pinger is any component that can report its availability.
type Pinger interface {
	Ping(ctx context.Context) error
}
