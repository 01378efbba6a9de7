// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// TaxonomyRepository defines the interface for taxonomy category persistence operations.
type TaxonomyRepository interface {
	// Create creates a new taxonomy category.
	Create(ctx context.Context, category *entity.TaxonomyCategory) error

	// CreateBatch creates several categories in one transaction.
	CreateBatch(ctx context.Context, categories []*entity.TaxonomyCategory) error

	// FindByID retrieves a taxonomy category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TaxonomyCategory, error)

	// FindByTenant retrieves a tenant's taxonomy in match-priority order.
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.TaxonomyCategory, error)

	// ExistsByNameAndTenant checks if the tenant already has a category with the name.
	ExistsByNameAndTenant(ctx context.Context, name string, tenantID uuid.UUID) (bool, error)

	// NextPosition returns the position after the tenant's last category.
	NextPosition(ctx context.Context, tenantID uuid.UUID) (int, error)

	// Update updates an existing taxonomy category.
	Update(ctx context.Context, category *entity.TaxonomyCategory) error

	// Delete removes a taxonomy category.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxonomySeed is one category of the default taxonomy.
type TaxonomySeed struct {
	Name     string
	Keywords []string
	Section  string
}

// TaxonomySeedSource loads the default taxonomy offered to new tenants.
type TaxonomySeedSource interface {
	Load(ctx context.Context) ([]TaxonomySeed, error)
}
