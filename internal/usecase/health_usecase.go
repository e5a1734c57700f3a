package usecase

import (
	"context"
	"time"

	"go-careers-backend/internal/domain"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db    Pinger
	extra map[string]func(context.Context) error
}

// NewHealthUsecase checks the database and, optionally, named auxiliary dependencies.
// Only the database decides overall health; auxiliaries are reported as degraded.
func NewHealthUsecase(db Pinger, extra map[string]func(context.Context) error) domain.HealthUsecase {
	return &healthUsecase{db: db, extra: extra}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok"}
	healthy := true

	if u.db == nil {
		status["database"] = "not configured"
		status["status"] = "down"
		healthy = false
	} else if err := u.db.Ping(ctx); err != nil {
		status["database"] = "unreachable"
		status["status"] = "down"
		healthy = false
	}

	for name, check := range u.extra {
		if err := check(ctx); err != nil {
			status[name] = "unavailable"
			if healthy {
				status["status"] = "degraded"
			}
			continue
		}
		status[name] = "ok"
	}

	return status, healthy
}
