// Package memory provides an in-memory movie.Repository. It backs unit
// tests and local runs where neither Postgres nor DynamoDB is available.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"moviebox/movie"

	"github.com/google/uuid"
)

type MovieRepository struct {
	mu     sync.RWMutex
	movies map[string]movie.Movie
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: make(map[string]movie.Movie)}
}

func (r *MovieRepository) Create(_ context.Context, m movie.Movie) (movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	r.movies[m.ID] = m
	return m, nil
}

func (r *MovieRepository) ListByUser(_ context.Context, userID string, offset, limit int) ([]movie.Movie, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []movie.Movie
	for _, m := range r.movies {
		if m.UserID == userID {
			owned = append(owned, m)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	if offset >= len(owned) {
		return []movie.Movie{}, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (r *MovieRepository) Update(_ context.Context, id, userID string, patch movie.Patch) (movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok || m.UserID != userID {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.PublishingYear != nil {
		m.PublishingYear = *patch.PublishingYear
	}
	if patch.PosterURL != nil {
		m.PosterURL = patch.PosterURL
	}
	m.UpdatedAt = time.Now().UTC()
	r.movies[id] = m
	return m, nil
}

func (r *MovieRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.movies[id]; ok && m.UserID == userID {
		delete(r.movies, id)
	}
	// missing or foreign rows are a no-op; delete is idempotent
	return nil
}
