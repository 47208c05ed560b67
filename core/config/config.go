package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	loadEnvOnce sync.Once

	mu    sync.RWMutex
	cache = make(map[reflect.Type]any)
)

// ErrNilPointer is returned when Load receives a nil or non-pointer target.
var ErrNilPointer = errors.New("config target must be a non-nil struct pointer")

// Load parses environment variables into cfg. Each configuration type is
// loaded once per process; later calls for the same type return the cached
// value. A .env file in the working directory is loaded before the first
// parse, without overriding variables already set.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNilPointer
	}

	loadEnvOnce.Do(func() {
		// Missing .env is not an error, real deployments set the
		// environment directly.
		_ = godotenv.Load()
	})

	typ := v.Elem().Type()

	mu.RLock()
	cached, ok := cache[typ]
	mu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse %s from environment: %w", typ, err)
	}

	mu.Lock()
	cache[typ] = v.Elem().Interface()
	mu.Unlock()

	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
