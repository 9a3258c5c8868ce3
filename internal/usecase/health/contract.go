package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ComponentChecker checks an external provider's availability.
type ComponentChecker interface {
	HealthCheck(ctx context.Context) error
}
