package entities

import "errors"

// Write-path errors. Read paths collapse "not found" into empty results
// instead of returning these; writes surface them so a bad target is loud.
var (
	// ErrUnknownArticle is returned when a revision targets a slug that was
	// never created. Articles are only created through the seeding and
	// import paths, never implicitly on write.
	ErrUnknownArticle = errors.New("unknown article")

	// ErrDuplicateEntity is returned when creating an entity whose canonical
	// name already exists (case-sensitive exact match).
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrEntityNotFound is returned when updating an entity that is not in
	// the cache.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrIdentityMismatch is returned when an update claims a remote identity
	// that disagrees with the cached one, which indicates the caller is
	// acting on stale data.
	ErrIdentityMismatch = errors.New("remote identity mismatch")
)
