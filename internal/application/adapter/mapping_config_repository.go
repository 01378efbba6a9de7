// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// MappingConfigRepository stores each tenant's transform configuration.
type MappingConfigRepository interface {
	// FindByTenant returns the saved configuration or domainerror.ErrMappingConfigNotFound.
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*valueobject.TransformConfig, error)

	// Upsert creates or replaces the tenant's configuration.
	Upsert(ctx context.Context, tenantID uuid.UUID, cfg valueobject.TransformConfig) error
}
