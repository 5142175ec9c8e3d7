// Package memory is an in-process movie store. Its contents live as long
// as the process.
package memory

import (
	"sync"

	"smdb/movie"
)

// DB is an ordered movie collection with its own id sequence. Writers are
// exclusive; readers share the lock and see a consistent snapshot.
type DB struct {
	mu     sync.RWMutex
	movies []movie.Movie
	lastID int
}

func NewDB() *DB {
	return &DB{movies: []movie.Movie{}}
}

// nextMovieID must be called with the write lock held. Ids are never
// reused, deleting the newest movie does not roll the sequence back.
func (db *DB) nextMovieID() int {
	db.lastID++
	return db.lastID
}

func (db *DB) indexOf(id int) int {
	for i := range db.movies {
		if db.movies[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) view(fn func()) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn()
}

func (db *DB) update(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	fn()
}
