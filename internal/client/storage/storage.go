// Package storage opens the durable slot the credential store writes to.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/tijarah/internal/client/repositories/metadata"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and parameterises the backend.
type Config struct {
	Backend     string
	SQLitePath  string
	RedisAddr   string
	RedisDB     int
	RedisPrefix string
	PingTimeout time.Duration
}

// Open returns the metadata repository for cfg and the closer that releases
// its connection.
func Open(ctx context.Context, cfg Config) (metadata.Repository, io.Closer, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), db, nil
	case BackendRedis:
		rdb, err := OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.PingTimeout)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewRedisRepository(rdb, cfg.RedisPrefix), rdb, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
