package server

import (
	"fmt"
	"sync"

	"social-feed-api/internal/config"
)

// The Lambda entrypoints reuse one container for the lifetime of a warm
// runtime; rebuilding the AWS clients on every invocation would turn each
// request into a cold start.
var warm struct {
	mu        sync.Mutex
	cfg       *config.Config
	container *Container
}

// Warm builds the shared container ahead of the first request. On an already
// warm runtime it only records the configuration and returns.
func Warm(cfg *config.Config) error {
	warm.mu.Lock()
	defer warm.mu.Unlock()

	warm.cfg = cfg
	if warm.container != nil {
		return nil
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	warm.container = container
	return nil
}

// Shared returns the warm container. When the runtime skipped Warm, or a
// previous build failed, it builds the container here instead of failing the
// request.
func Shared() (*Container, error) {
	warm.mu.Lock()
	defer warm.mu.Unlock()

	if warm.container != nil {
		return warm.container, nil
	}

	if warm.cfg == nil {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		warm.cfg = cfg
	}

	container, err := NewContainer(warm.cfg)
	if err != nil {
		return nil, err
	}
	warm.container = container
	return container, nil
}

// CloseShared tears down the warm container. The retained configuration is
// kept so a later Shared call can rebuild.
func CloseShared() error {
	warm.mu.Lock()
	defer warm.mu.Unlock()

	if warm.container == nil {
		return nil
	}
	err := warm.container.Close()
	warm.container = nil
	return err
}
