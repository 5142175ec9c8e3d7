package postgres

import (
	"context"
	"database/sql"
	"errors"

	"smdb/movie"
	"smdb/pkg/result"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int    `gorm:"primaryKey"`
	Title       string `gorm:"size:256;not null"`
	Year        int    `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func newMovieModel(m movie.Movie) MovieModel {
	return MovieModel{
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
	}
}

func (model MovieModel) toMovie() *movie.Movie {
	return &movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		Year:        model.Year,
		Description: model.Description,
	}
}

// MovieRepository implements movie.Repository interface.
// Ids come from the table's serial sequence, which never hands out a
// value twice.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) ReadPage(ctx context.Context, page, size int) (*result.PagedResult[movie.Movie], error) {
	var (
		total  int64
		models []MovieModel
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&MovieModel{}).Count(&total).Error; err != nil {
			return err
		}
		// past the end, and (page-1)*size could overflow
		if page < 1 || size < 1 || int64(page-1) > total/int64(size) {
			return nil
		}
		return tx.Order("id").
			Offset((page - 1) * size).
			Limit(size).
			Find(&models).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}

	items := make([]movie.Movie, len(models))
	for i, model := range models {
		items[i] = *model.toMovie()
	}
	return &result.PagedResult[movie.Movie]{
		TotalCount: int(total),
		Items:      items,
	}, nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (*movie.Movie, error) {
	model := newMovieModel(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return model.toMovie(), nil
}

func (r *MovieRepository) ReadOne(ctx context.Context, id int) (*movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.toMovie(), nil
}

func (r *MovieRepository) Update(ctx context.Context, id int, data movie.Movie) (*movie.Movie, error) {
	var updated *movie.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error; err != nil {
			return err
		}

		// a map so that zero values (empty description) are written too
		err := tx.Model(&model).Updates(map[string]interface{}{
			"title":       data.Title,
			"year":        data.Year,
			"description": data.Description,
		}).Error
		if err != nil {
			return err
		}

		model.Title = data.Title
		model.Year = data.Year
		model.Description = data.Description
		updated = model.toMovie()
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int) (*movie.Movie, error) {
	var deleted *movie.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model).Error; err != nil {
			return err
		}

		deleted = model.toMovie()
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
