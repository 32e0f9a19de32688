package movie

import (
	"strings"
	"time"

	"moviebox/errs"
)

var (
	ErrInvalidTitle  = errs.Errorf(errs.EINVALID, "movie: title must not be empty")
	ErrInvalidYear   = errs.Errorf(errs.EINVALID, "movie: publishing year is out of range")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

// Movie is a catalog entry owned by exactly one user. UserID is always the
// subject of the verified token that created the record, never client input.
type Movie struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	PublishingYear int       `json:"publishing_year"`
	PosterURL      *string   `json:"poster_url"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	if m.PublishingYear < 1800 || m.PublishingYear > 3000 {
		return ErrInvalidYear
	}
	return nil
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Title          *string
	PublishingYear *int
	PosterURL      *string
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrInvalidTitle
	}
	if p.PublishingYear != nil && (*p.PublishingYear < 1800 || *p.PublishingYear > 3000) {
		return ErrInvalidYear
	}
	return nil
}

// Page is the transient result of a paginated list: one slice of the user's
// catalog plus the exact total, recomputed on every request.
type Page struct {
	Data  []Movie `json:"data"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
