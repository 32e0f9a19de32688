package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"moviebox/errs"
	"moviebox/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies", s.handleCreateMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Paginated list of the caller's movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 8"
// @Success 200 {object} movie.Page
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", movie.DefaultLimit)
	if err != nil {
		return err
	}

	result, err := s.MovieService.ListByUser(c.Request().Context(), userID, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Add a movie to the caller's catalog
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.MovieService.Create(c.Request().Context(), userID, req.Title, req.PublishingYear, req.PosterURL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Partially update one of the caller's movies
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to update"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.MovieService.Update(c.Request().Context(), c.Param("id"), userID, req.ToPatch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Delete one of the caller's movies; deleting twice is not an error
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} APIResponse
// @Security BearerAuth
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Movie deleted"})
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "query parameter %q must be an integer", name)
	}
	return parsed, nil
}
