package lambda

import (
	"sync"
	"time"

	"clubdvigi-api/internal/config"
	"clubdvigi-api/pkg/server"
)

// ConnectionManager keeps the service container, and with it the pooled
// Shopify connections, alive across warm Lambda invocations
type ConnectionManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	config      *config.Config
	loadConfig  func() (*config.Config, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that loads its configuration lazily
func NewConnectionManager(loadConfig func() (*config.Config, error)) *ConnectionManager {
	return &ConnectionManager{loadConfig: loadConfig}
}

// Initialize builds the container from cfg unless one already exists
func (cm *ConnectionManager) Initialize(cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.initializeLocked(cfg)
}

func (cm *ConnectionManager) initializeLocked(cfg *config.Config) error {
	if cm.initialized {
		return nil
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return err
	}

	cm.config = cfg
	cm.container = container
	cm.lastUsed = time.Now()
	cm.initialized = true
	return nil
}

// GetContainer returns the service container, initializing if necessary
func (cm *ConnectionManager) GetContainer() (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		cfg := cm.config
		if cfg == nil {
			loaded, err := cm.loadConfig()
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		if err := cm.initializeLocked(cfg); err != nil {
			return nil, err
		}
	}

	cm.lastUsed = time.Now()
	return cm.container, nil
}

// IsHealthy reports whether a container is initialized and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.initialized || cm.container == nil {
		return false
	}

	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the container; the next GetContainer builds a new one
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.initialized = false
	return nil
}
