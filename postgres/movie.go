package postgres

import (
	"context"
	"errors"
	"time"

	"moviebox/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for catalog entries.
type MovieModel struct {
	ID             string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string    `gorm:"not null"`
	PublishingYear int       `gorm:"column:publishing_year;not null"`
	PosterURL      *string   `gorm:"column:poster_url"`
	UserID         string    `gorm:"column:user_id;not null;index"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ListByUser returns one offset page of the user's rows plus the exact
// total count for that user. Count and the page read are separate
// queries, so a write landing between them can skew total by one; the
// next request recomputes both.
func (r *MovieRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]movie.Movie, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&MovieModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var models []MovieModel
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, total, nil
}

// Create inserts a new row and returns it with the generated id.
func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// Update applies non-nil patch fields to the row matching both id and
// owner. Zero affected rows means the row does not exist or belongs to
// someone else; both report movie.ErrMovieNotFound.
func (r *MovieRepository) Update(ctx context.Context, id, userID string, patch movie.Patch) (movie.Movie, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.PublishingYear != nil {
		updates["publishing_year"] = *patch.PublishingYear
	}
	if patch.PosterURL != nil {
		updates["poster_url"] = *patch.PosterURL
	}

	result := r.db.WithContext(ctx).Model(&MovieModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	return r.getByID(ctx, id, userID)
}

// Delete removes the row matching both id and owner. Affected-row count is
// deliberately not checked: delete is idempotent.
func (r *MovieRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&MovieModel{}).Error
}

func (r *MovieRepository) getByID(ctx context.Context, id, userID string) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:             model.ID,
		Title:          model.Title,
		PublishingYear: model.PublishingYear,
		PosterURL:      model.PosterURL,
		UserID:         model.UserID,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:             m.ID,
		Title:          m.Title,
		PublishingYear: m.PublishingYear,
		PosterURL:      m.PosterURL,
		UserID:         m.UserID,
	}
}
