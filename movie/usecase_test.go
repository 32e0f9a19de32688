package movie_test

import (
	"context"
	"testing"

	"moviebox/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]movie.Movie, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]movie.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieRepository) Create(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) Update(ctx context.Context, id, userID string, patch movie.Patch) (movie.Movie, error) {
	args := m.Called(ctx, id, userID, patch)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestCreate(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)

	t.Run("should create movie owned by the caller", func(t *testing.T) {
		expected := movie.Movie{Title: "Dune", PublishingYear: 2021, UserID: "u1"}
		r.On("Create", mock.Anything, expected).Return(movie.Movie{ID: "m1", Title: "Dune", PublishingYear: 2021, UserID: "u1"}, nil).Once()

		created, err := uc.Create(context.Background(), "u1", "Dune", 2021, nil)

		assert.NoError(t, err)
		assert.Equal(t, "u1", created.UserID, "owner must come from the verified subject")
		assert.Equal(t, "m1", created.ID)
		r.AssertExpectations(t)
	})

	t.Run("should fail on empty title", func(t *testing.T) {
		_, err := uc.Create(context.Background(), "u1", "   ", 2021, nil)

		assert.Equal(t, movie.ErrInvalidTitle, err)
		r.AssertExpectations(t)
	})

	t.Run("should fail on out-of-range year", func(t *testing.T) {
		_, err := uc.Create(context.Background(), "u1", "Dune", 99, nil)

		assert.Equal(t, movie.ErrInvalidYear, err)
		r.AssertExpectations(t)
	})
}

func TestListByUser(t *testing.T) {
	t.Run("computes offset from page and limit", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		movies := []movie.Movie{{ID: "m9", UserID: "u1"}, {ID: "m10", UserID: "u1"}}
		r.On("ListByUser", mock.Anything, "u1", 8, 8).Return(movies, int64(10), nil).Once()

		page, err := uc.ListByUser(context.Background(), "u1", 2, 8)

		assert.NoError(t, err)
		assert.Equal(t, movies, page.Data)
		assert.Equal(t, int64(10), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 8, page.Limit)
		r.AssertExpectations(t)
	})

	t.Run("clamps page and limit instead of rejecting", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		r.On("ListByUser", mock.Anything, "u1", 0, movie.DefaultLimit).Return([]movie.Movie{}, int64(0), nil).Once()

		page, err := uc.ListByUser(context.Background(), "u1", -3, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, movie.DefaultLimit, page.Limit)
		r.AssertExpectations(t)
	})

	t.Run("caps oversized limits", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		r.On("ListByUser", mock.Anything, "u1", 0, movie.MaxLimit).Return([]movie.Movie{}, int64(0), nil).Once()

		page, err := uc.ListByUser(context.Background(), "u1", 1, 10_000)

		assert.NoError(t, err)
		assert.Equal(t, movie.MaxLimit, page.Limit)
		r.AssertExpectations(t)
	})
}

func TestUpdate(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)

	t.Run("passes patch through scoped by owner", func(t *testing.T) {
		title := "Dune Part Two"
		patch := movie.Patch{Title: &title}
		updated := movie.Movie{ID: "m1", Title: title, UserID: "u1"}
		r.On("Update", mock.Anything, "m1", "u1", patch).Return(updated, nil).Once()

		got, err := uc.Update(context.Background(), "m1", "u1", patch)

		assert.NoError(t, err)
		assert.Equal(t, updated, got)
		r.AssertExpectations(t)
	})

	t.Run("rejects blank title in patch", func(t *testing.T) {
		blank := "  "
		_, err := uc.Update(context.Background(), "m1", "u1", movie.Patch{Title: &blank})

		assert.Equal(t, movie.ErrInvalidTitle, err)
		r.AssertExpectations(t)
	})

	t.Run("surfaces not found for missing or foreign rows", func(t *testing.T) {
		title := "Y"
		patch := movie.Patch{Title: &title}
		r.On("Update", mock.Anything, "missing", "u1", patch).Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		_, err := uc.Update(context.Background(), "missing", "u1", patch)

		assert.Equal(t, movie.ErrMovieNotFound, err)
		r.AssertExpectations(t)
	})
}

func TestDelete(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)

	t.Run("delete is idempotent", func(t *testing.T) {
		r.On("Delete", mock.Anything, "m1", "u1").Return(nil).Times(2)

		assert.NoError(t, uc.Delete(context.Background(), "m1", "u1"))
		assert.NoError(t, uc.Delete(context.Background(), "m1", "u1"), "second delete must not error")
		r.AssertExpectations(t)
	})
}
