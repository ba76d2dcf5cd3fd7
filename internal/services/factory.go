package services

import (
	"fmt"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	RegistrationService RegistrationService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(store CustomerStore, config *RegistrationConfig) (*ServiceContainer, error) {
	if store == nil {
		return nil, fmt.Errorf("customer store cannot be nil")
	}

	if config == nil {
		config = &RegistrationConfig{SerializeByEmail: true}
	}

	return &ServiceContainer{
		RegistrationService: NewRegistrationService(store, *config),
	}, nil
}
