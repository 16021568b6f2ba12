//go:build integration

package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// startPostgres runs postgres:16-alpine and returns its connection string
// and a cleanup function.
func startPostgres(ctx context.Context) (string, func(), error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("patientstest"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", nil, fmt.Errorf("start postgres container: %w", err)
	}
	cleanup := func() { terminate(container) }

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("postgres connection string: %w", err)
	}
	return connStr, cleanup, nil
}

// startRedis runs redis:7-alpine and returns a connected client.
func startRedis(ctx context.Context) (*redis.Client, func(), error) {
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, nil, fmt.Errorf("start redis container: %w", err)
	}

	addr, err := container.ConnectionString(ctx)
	if err != nil {
		terminate(container)
		return nil, nil, fmt.Errorf("redis connection string: %w", err)
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		terminate(container)
		return nil, nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		terminate(container)
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, func() {
		_ = client.Close()
		terminate(container)
	}, nil
}

func terminate(c testcontainers.Container) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = c.Terminate(ctx)
}
