// Package httpapi exposes the in-memory database over gin: GET /posts and
// GET /tags, mirroring the query/sort/pagination surface of the original
// danbooru-flavored search endpoint.
package httpapi

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/edirooss/booru-index/internal/booru"
	"github.com/edirooss/booru-index/internal/db"
)

// Service guards the live Database with a single-writer/multi-reader
// lock: the change-feed listener takes the write half, every HTTP request
// takes the read half, matching the concurrency model of a snapshot-style
// in-memory index serving a much higher read than write rate.
type Service struct {
	mu    sync.RWMutex
	store *db.Database[booru.Post]

	// sg coalesces concurrent requests for the same query+sort+page+limit into
	// a single evaluation, since a burst of identical polling requests
	// shouldn't each re-walk the index and re-sort the result set.
	sg singleflight.Group
}

// NewService wraps an already-loaded Database.
func NewService(store *db.Database[booru.Post]) *Service {
	return &Service{store: store}
}

// Mutex exposes the guarding lock so the change-feed listener can share
// it with this service.
func (s *Service) Mutex() *sync.RWMutex { return &s.mu }

// Store exposes the underlying Database for the change-feed listener.
func (s *Service) Store() *db.Database[booru.Post] { return s.store }
