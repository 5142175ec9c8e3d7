package httpserver

import (
	"strconv"
	"strings"

	"smdb/movie"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage     = 1
	defaultPageSize = 9
)

type MovieRequest struct {
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

func (r *MovieRequest) ToMovie() *movie.Movie {
	if r == nil {
		return nil
	}
	return &movie.Movie{
		ID:          movie.UnsetID,
		Title:       r.Title,
		Year:        r.Year,
		Description: r.Description,
	}
}

// bindMovie decodes the JSON body. An absent, malformed or null body
// gives nil, which the use case rejects as a missing payload.
func bindMovie(c echo.Context) *movie.Movie {
	var req *MovieRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
		return nil
	}
	return req.ToMovie()
}

// intParam parses raw as an integer, falling back when it is absent or
// not a number.
func intParam(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}
