package movie

import "context"

const (
	DefaultLimit = 8
	MaxLimit     = 100
)

type Service interface {
	ListByUser(ctx context.Context, userID string, page, limit int) (Page, error)
	Create(ctx context.Context, userID, title string, publishingYear int, posterURL *string) (Movie, error)
	Update(ctx context.Context, id, userID string, patch Patch) (Movie, error)
	Delete(ctx context.Context, id, userID string) error
}

type Repository interface {
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]Movie, int64, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id, userID string, patch Patch) (Movie, error)
	Delete(ctx context.Context, id, userID string) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// ListByUser returns one page of the user's catalog. Page and limit are
// clamped rather than rejected so sloppy callers keep the original contract:
// page below 1 becomes 1, limit below 1 becomes the default, limit above
// MaxLimit is capped.
func (uc *Usecase) ListByUser(ctx context.Context, userID string, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := (page - 1) * limit
	movies, total, err := uc.r.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Data:  movies,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (uc *Usecase) Create(ctx context.Context, userID, title string, publishingYear int, posterURL *string) (Movie, error) {
	m := Movie{
		Title:          title,
		PublishingYear: publishingYear,
		PosterURL:      posterURL,
		UserID:         userID,
	}
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.Create(ctx, m)
}

// Update applies a partial patch to the record matching both id and owner.
// A record that does not exist and a record owned by someone else map to
// the same ErrMovieNotFound, so ownership cannot be probed.
func (uc *Usecase) Update(ctx context.Context, id, userID string, patch Patch) (Movie, error) {
	if err := patch.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.Update(ctx, id, userID, patch)
}

// Delete removes the record matching both id and owner. Deleting a record
// that is already gone still succeeds; delete is idempotent.
func (uc *Usecase) Delete(ctx context.Context, id, userID string) error {
	return uc.r.Delete(ctx, id, userID)
}
