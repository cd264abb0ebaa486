package entities

import (
	"fmt"
	"strings"
	"time"
)

// EntityType categorizes a named in-fiction entity. The set is closed;
// it mirrors the select options of the published entity database.
type EntityType string

const (
	TypePC           EntityType = "PC"
	TypeNPC          EntityType = "NPC"
	TypeLocation     EntityType = "Location"
	TypeOrganization EntityType = "Organization"
	TypeDeity        EntityType = "Deity"
	TypeCreature     EntityType = "Creature"
	TypeObject       EntityType = "Object"
	TypeConcept      EntityType = "Concept"
)

// EntityTypes lists every valid entity type.
var EntityTypes = []EntityType{
	TypePC,
	TypeNPC,
	TypeLocation,
	TypeOrganization,
	TypeDeity,
	TypeCreature,
	TypeObject,
	TypeConcept,
}

// ParseEntityType matches a type name case-insensitively against the closed set.
func ParseEntityType(name string) (EntityType, error) {
	for _, t := range EntityTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q", name)
}

// Entity is a named in-fiction entity tracked for name normalization and
// published to the remote entity database. The canonical name acts as the
// primary key; entities are created on first mention and never deleted.
type Entity struct {
	Name            string     `json:"name"`
	Type            EntityType `json:"type"`
	Aliases         string     `json:"aliases,omitempty"`              // comma-separated alternate names
	Misspellings    string     `json:"common_misspellings,omitempty"`  // comma-separated known misspellings
	Description     string     `json:"description,omitempty"`
	FirstAppearance time.Time  `json:"first_appearance,omitzero"` // immutable once set
	ExternalID      string     `json:"external_id,omitempty"`     // remote page id, empty until first synced
	Modified        bool       `json:"-"`                         // local state differs from last synced state
}

// EntityUpdate carries a partial update for an entity. Nil fields mean
// "no change", never "clear to empty". ExternalID, when non-empty, is the
// caller's claim about the entity's remote identity and must match the
// cached value.
type EntityUpdate struct {
	Type         *EntityType
	Aliases      *string
	Misspellings *string
	Description  *string
	// FirstAppearance backfills the discovery date when it is still unset;
	// it never overwrites an existing value.
	FirstAppearance *time.Time
	ExternalID      string
}

// MergeNameList unions a comma-separated list of additions into an existing
// comma-separated list, preserving order and dropping case-insensitive
// duplicates. Existing entries are never removed.
func MergeNameList(existing, additions string) string {
	merged := splitNameList(existing)
	seen := make(map[string]bool, len(merged))
	for _, name := range merged {
		seen[strings.ToLower(name)] = true
	}
	for _, name := range splitNameList(additions) {
		if !seen[strings.ToLower(name)] {
			seen[strings.ToLower(name)] = true
			merged = append(merged, name)
		}
	}
	return strings.Join(merged, ", ")
}

// EqualNameList reports whether two comma-separated lists name the same
// set, ignoring case, order and spacing. Used to tell a real change apart
// from pure formatting differences.
func EqualNameList(a, b string) bool {
	an, bn := splitNameList(a), splitNameList(b)
	if len(an) != len(bn) {
		return false
	}
	seen := make(map[string]bool, len(an))
	for _, name := range an {
		seen[strings.ToLower(name)] = true
	}
	for _, name := range bn {
		if !seen[strings.ToLower(name)] {
			return false
		}
	}
	return true
}

func splitNameList(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
