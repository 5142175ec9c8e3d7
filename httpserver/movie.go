package httpserver

import (
	"smdb/errs"
	"smdb/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleReadMovies)
	g.POST("/movies", s.handleCreateMovie)
	g.GET("/movies/:id", s.handleReadMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

func (s *Server) movieService() (movie.Service, error) {
	if s.MovieService == nil {
		return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	return s.MovieService, nil
}

func movieID(c echo.Context) int {
	return intParam(c.Param("id"), movie.UnsetID)
}

// handleReadMovies godoc
// @Summary List Movies
// @Description Paginated list of movies in insertion order
// @Tags movies
// @Produce json
// @Param page query int false "Page number, starting at 1 (default 1)"
// @Param size query int false "Page size (default 9)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleReadMovies(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	page := intParam(c.QueryParam("page"), defaultPage)
	size := intParam(c.QueryParam("size"), defaultPageSize)

	res := svc.ReadMovies(c.Request().Context(), page, size)
	if !res.IsOK() {
		return s.writeFailure(c, res.Err(), res.StatusCode())
	}

	paged := res.Payload()
	return writePagedList(c, res.StatusCode(), paged.Items, page, size, paged.TotalCount)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return s.writeMovie(c, svc.CreateMovie(c.Request().Context(), bindMovie(c)))
}

// handleReadMovie godoc
// @Summary Read Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleReadMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return s.writeMovie(c, svc.ReadMovie(c.Request().Context(), movieID(c)))
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return s.writeMovie(c, svc.UpdateMovie(c.Request().Context(), movieID(c), bindMovie(c)))
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return s.writeMovie(c, svc.DeleteMovie(c.Request().Context(), movieID(c)))
}
