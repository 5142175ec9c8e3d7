package memory

import (
	"context"
	"slices"

	"smdb/movie"
	"smdb/pkg/result"
)

// MovieRepository implements movie.Repository on top of a DB. Returned
// movies are copies; callers never hold references into the store.
type MovieRepository struct {
	db *DB
}

func NewMovieRepository(db *DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) ReadPage(_ context.Context, page, size int) (*result.PagedResult[movie.Movie], error) {
	var paged *result.PagedResult[movie.Movie]
	r.db.view(func() {
		paged = result.Paginate(r.db.movies, page, size)
	})
	return paged, nil
}

func (r *MovieRepository) Create(_ context.Context, m movie.Movie) (*movie.Movie, error) {
	r.db.update(func() {
		m.ID = r.db.nextMovieID()
		r.db.movies = append(r.db.movies, m)
	})
	return &m, nil
}

func (r *MovieRepository) ReadOne(_ context.Context, id int) (*movie.Movie, error) {
	var found *movie.Movie
	r.db.view(func() {
		if i := r.db.indexOf(id); i >= 0 {
			m := r.db.movies[i]
			found = &m
		}
	})
	return found, nil
}

func (r *MovieRepository) Update(_ context.Context, id int, data movie.Movie) (*movie.Movie, error) {
	var updated *movie.Movie
	r.db.update(func() {
		i := r.db.indexOf(id)
		if i < 0 {
			return
		}
		stored := &r.db.movies[i]
		stored.Title = data.Title
		stored.Year = data.Year
		stored.Description = data.Description

		m := *stored
		updated = &m
	})
	return updated, nil
}

func (r *MovieRepository) Delete(_ context.Context, id int) (*movie.Movie, error) {
	var deleted *movie.Movie
	r.db.update(func() {
		i := r.db.indexOf(id)
		if i < 0 {
			return
		}
		m := r.db.movies[i]
		deleted = &m
		r.db.movies = slices.Delete(r.db.movies, i, i+1)
	})
	return deleted, nil
}
