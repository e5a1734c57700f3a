package domain

import "context"

// HealthUsecase reports per-dependency status and whether the service can serve traffic.
type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}
