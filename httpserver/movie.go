package httpserver

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"catalog/errs"
	"catalog/movie"

	"github.com/labstack/echo/v4"
)

var errMovieServiceMissing = errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	write := s.writeGuard()

	g.GET("", s.handleListMovies)
	g.POST("", s.handleCreateMovie, write...)
	g.GET("/:id", s.handleGetMovie)
	g.PUT("/:id", s.handleUpdateMovie, write...)
	g.PUT("/:id/title", s.handleUpdateMovieTitle, write...)
	g.DELETE("/:id", s.handleDeleteMovie, write...)
}

// handleListMovies godoc
// @Summary List movies
// @Description Filters by the first non-blank of title, director, category. Screening times are validated but not applied.
// @Tags movies
// @Produce json
// @Param title query string false "Exact title"
// @Param director query string false "Exact director"
// @Param category query string false "Exact category"
// @Param screeningFromTime query string false "RFC 3339 timestamp"
// @Param screeningToTime query string false "RFC 3339 timestamp"
// @Success 200 {array} MovieDTO
// @Failure 400 {object} APIResponse
// @Router /movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	from, err := parseOptionalTimestamp("screeningFromTime", c.QueryParam("screeningFromTime"))
	if err != nil {
		return err
	}
	to, err := parseOptionalTimestamp("screeningToTime", c.QueryParam("screeningToTime"))
	if err != nil {
		return err
	}

	movies, err := s.MovieService.ListMovies(c.Request().Context(), movie.Filter{
		Title:         c.QueryParam("title"),
		Director:      c.QueryParam("director"),
		Category:      c.QueryParam("category"),
		ScreeningFrom: from,
		ScreeningTo:   to,
	})
	if err != nil {
		return err
	}

	return writeMovies(c, http.StatusOK, toMovieDTOs(movies))
}

// handleCreateMovie godoc
// @Summary Create a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieDTO true "Movie without id"
// @Success 201 {integer} int64 "The id of the newly created movie"
// @Failure 400 {object} APIResponse
// @Router /movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	var dto MovieDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	if dto.MovieID != nil && *dto.MovieID != "" {
		return movie.ErrIDNotAllowed
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	m, err := dto.toMovie(0)
	if err != nil {
		return err
	}

	id, err := s.MovieService.CreateMovie(c.Request().Context(), m)
	if err != nil {
		return err
	}

	return writeMovies(c, http.StatusCreated, id)
}

// handleGetMovie godoc
// @Summary Get a single movie specified by id
// @Tags movies
// @Produce json
// @Param id path string true "The numeric id of the movie"
// @Success 200 {object} MovieDTO
// @Failure 404 {object} APIResponse
// @Router /movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return movie.ErrMovieNotFound
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeMovies(c, http.StatusOK, toMovieDTO(m))
}

// handleUpdateMovie godoc
// @Summary Replace an existing movie
// @Description The body id must equal the path id. Movies cannot be created with PUT.
// @Tags movies
// @Accept json
// @Param id path string true "The numeric id of the movie"
// @Param movie body MovieDTO true "Replacement movie"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	var dto MovieDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}

	// The id travels as a string; an unusable body id means the resource
	// cannot be addressed at all.
	bodyID := deref(dto.MovieID)
	id, ok := parseID(bodyID)
	if !ok {
		return movie.ErrMovieNotFound
	}
	if bodyID != c.Param("id") {
		return movie.ErrIDMismatch
	}

	ctx := c.Request().Context()
	m, err := dto.toMovie(id)
	if err != nil {
		// report a missing movie before a malformed payload
		if _, getErr := s.MovieService.GetMovie(ctx, id); getErr != nil {
			return getErr
		}
		return err
	}

	if err := s.MovieService.UpdateMovie(ctx, m); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// handleUpdateMovieTitle godoc
// @Summary Update the title of an existing movie
// @Tags movies
// @Accept plain
// @Param id path int true "The numeric id of the movie"
// @Param title body string true "The new title"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /movies/{id}/title [put]
func (s *Server) handleUpdateMovieTitle(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return errs.Errorf(errs.EINVALID, "movie: invalid id %s", strconv.Quote(c.Param("id")))
	}

	title, err := readText(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.UpdateTitle(c.Request().Context(), id, title); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// handleDeleteMovie godoc
// @Summary Delete a movie with the given id
// @Tags movies
// @Param id path string true "The numeric id of the movie"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return errs.Errorf(errs.EINVALID, "movie: invalid id %s", strconv.Quote(c.Param("id")))
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// readText returns the raw request body with a single trailing newline
// removed, as sent by most command line clients.
func readText(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "cannot read request body").SetInternal(err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(body), "\n"), "\r"), nil
}
