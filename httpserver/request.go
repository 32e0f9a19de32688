package httpserver

import (
	"moviebox/movie"
)

type CreateMovieRequest struct {
	Title          string  `json:"title" validate:"required,notblank"`
	PublishingYear int     `json:"publishing_year" validate:"required"`
	PosterURL      *string `json:"poster_url" validate:"omitempty,max=2048"`
}

type UpdateMovieRequest struct {
	Title          *string `json:"title" validate:"omitempty,notblank"`
	PublishingYear *int    `json:"publishing_year" validate:"omitempty"`
	PosterURL      *string `json:"poster_url" validate:"omitempty,max=2048"`
}

func (r UpdateMovieRequest) ToPatch() movie.Patch {
	return movie.Patch{
		Title:          r.Title,
		PublishingYear: r.PublishingYear,
		PosterURL:      r.PosterURL,
	}
}
