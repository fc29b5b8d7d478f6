package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/config"
	"github.com/cristianoliveira/adnow/internal/storage/redis"
	"github.com/cristianoliveira/adnow/internal/storage/sqlite"
)

const (
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendRedis selects Redis-backed storage.
	BackendRedis = "redis"
	// BackendMemory selects process-local storage that does not survive restarts.
	BackendMemory = "memory"

	dbFileName = "adnow.db"

	redisConnectTimeout = 5 * time.Second
)

var (
	_ Backend = (*sqlite.Backend)(nil)
	_ Backend = (*redis.Backend)(nil)
	_ Backend = (*MemoryBackend)(nil)
)

// NewFromConfig opens the configured backend and wraps it in a Store.
func NewFromConfig() *Store {
	return NewStore(NewBackendFromConfig())
}

// NewBackendFromConfig creates a backend based on configuration.
// It never fails: when the configured backend cannot be opened the memory
// backend is returned and a warning is printed.
func NewBackendFromConfig() Backend {
	config.Load()
	return NewForBackend(config.Get("storage_backend", BackendSQLite))
}

// NewForBackend creates a backend for the provided backend name.
func NewForBackend(backend string) Backend {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		b, err := sqlite.NewBackend(DBPath())
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to memory: %v", err))
			return NewMemoryBackend()
		}
		return b
	case BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()
		b, err := redis.NewBackend(ctx, redis.Options{
			Addr:     config.Get("redis_addr", "localhost:6379"),
			Password: config.Get("redis_password", ""),
			DB:       config.GetInt("redis_db", 0),
		})
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize redis backend, falling back to memory: %v", err))
			return NewMemoryBackend()
		}
		return b
	case BackendMemory:
		return NewMemoryBackend()
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to memory", backend))
		return NewMemoryBackend()
	}
}

// DBPath returns the SQLite database path: storage_path if set, else state_dir/adnow.db.
func DBPath() string {
	if p := strings.TrimSpace(config.Get("storage_path", "")); p != "" {
		return p
	}
	return filepath.Join(config.Get("state_dir", ""), dbFileName)
}
