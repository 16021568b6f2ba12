package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// Pinger reports liveness. The pool and the session store both satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolStats is the subset of pgxpool.Stat shown on /health/db.
type PoolStats struct {
	Total    int32 `json:"total"`
	Idle     int32 `json:"idle"`
	InUse    int32 `json:"in_use"`
	MaxConns int32 `json:"max"`
	Acquires int64 `json:"acquire_count"`
}

func StatsOf(pool *pgxpool.Pool) PoolStats {
	s := pool.Stat()
	return PoolStats{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		InUse:    s.AcquiredConns(),
		MaxConns: s.MaxConns(),
		Acquires: s.AcquireCount(),
	}
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Pool   PoolStats         `json:"pool"`
}

// HealthHandler pings the database plus deps under one deadline and
// answers 503 naming every component that failed. Nil deps are skipped.
func HealthHandler(pool *pgxpool.Pool, deps map[string]Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		report := healthReport{Status: "healthy", Checks: map[string]string{}}
		check := func(name string, p Pinger) {
			if err := p.Ping(ctx); err != nil {
				report.Status = "unhealthy"
				report.Checks[name] = err.Error()
				return
			}
			report.Checks[name] = "ok"
		}

		check("database", pool)
		for name, dep := range deps {
			if dep != nil {
				check(name, dep)
			}
		}
		report.Pool = StatsOf(pool)

		code := http.StatusOK
		if report.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, report)
	}
}
