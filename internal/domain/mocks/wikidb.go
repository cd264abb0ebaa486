package mocks

import (
	"context"
	"fmt"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// WikiDB is a mock implementation of ports.WikiDB. Remote records are held
// in a map keyed by external ID. Set ListErr/CreateErr/UpdateErr to fail
// the corresponding call; set FailNames to fail pushes for specific
// entities only.
type WikiDB struct {
	Remote    map[string]*entities.Entity
	ListErr   error
	CreateErr error
	UpdateErr error
	FailNames map[string]bool

	ListCalls   int
	CreateCalls int
	UpdateCalls int

	nextID int
}

// NewWikiDB creates a new mock WikiDB.
func NewWikiDB() *WikiDB {
	return &WikiDB{
		Remote:    make(map[string]*entities.Entity),
		FailNames: make(map[string]bool),
	}
}

// AddRemote registers a pre-existing remote record and returns its ID.
func (m *WikiDB) AddRemote(e entities.Entity) string {
	m.nextID++
	id := fmt.Sprintf("page-%d", m.nextID)
	e.ExternalID = id
	m.Remote[id] = &e
	return id
}

// EnsureSchema verifies the remote entity database is reachable.
func (m *WikiDB) EnsureSchema(_ context.Context) error {
	return m.ListErr
}

// ListEntities fetches every entity from the remote database.
func (m *WikiDB) ListEntities(_ context.Context) ([]*entities.Entity, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	result := make([]*entities.Entity, 0, len(m.Remote))
	for _, e := range m.Remote {
		clone := *e
		result = append(result, &clone)
	}
	return result, nil
}

// CreateEntity creates a remote record and returns its external ID.
func (m *WikiDB) CreateEntity(_ context.Context, entity *entities.Entity) (string, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if m.FailNames[entity.Name] {
		return "", fmt.Errorf("remote rejected %s", entity.Name)
	}
	m.nextID++
	id := fmt.Sprintf("page-%d", m.nextID)
	stored := *entity
	stored.ExternalID = id
	m.Remote[id] = &stored
	return id, nil
}

// UpdateEntity pushes the entity's full current state to its remote record.
func (m *WikiDB) UpdateEntity(_ context.Context, entity *entities.Entity) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.FailNames[entity.Name] {
		return fmt.Errorf("remote rejected %s", entity.Name)
	}
	if _, exists := m.Remote[entity.ExternalID]; !exists {
		return fmt.Errorf("remote record %s not found", entity.ExternalID)
	}
	stored := *entity
	m.Remote[entity.ExternalID] = &stored
	return nil
}
