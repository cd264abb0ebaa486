package ports

import (
	"context"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// WikiDB is the remote publishing target for the entity registry: a
// property store addressable by a stable external identifier per record.
// Only create/update/list semantics are required; everything else about
// the remote service is opaque to the domain.
type WikiDB interface {
	// EnsureSchema verifies the remote entity database is reachable.
	EnsureSchema(ctx context.Context) error

	// ListEntities fetches every entity from the remote database.
	ListEntities(ctx context.Context) ([]*entities.Entity, error)

	// CreateEntity creates a remote record and returns its external ID.
	CreateEntity(ctx context.Context, entity *entities.Entity) (string, error)

	// UpdateEntity pushes the entity's full current state to the remote
	// record identified by entity.ExternalID.
	UpdateEntity(ctx context.Context, entity *entities.Entity) error
}
