package movie

import (
	"context"
	"net/http"

	"smdb/errs"
	"smdb/pkg/result"
)

type Service interface {
	ReadMovies(ctx context.Context, page, size int) result.Result[*result.PagedResult[Movie]]
	CreateMovie(ctx context.Context, m *Movie) result.Result[*Movie]
	ReadMovie(ctx context.Context, id int) result.Result[*Movie]
	UpdateMovie(ctx context.Context, id int, m *Movie) result.Result[*Movie]
	DeleteMovie(ctx context.Context, id int) result.Result[*Movie]
}

// Repository stores movies. Every method reports a missing movie as
// (nil, nil); a non-nil error means the storage itself failed.
type Repository interface {
	ReadPage(ctx context.Context, page, size int) (*result.PagedResult[Movie], error)
	Create(ctx context.Context, m Movie) (*Movie, error)
	ReadOne(ctx context.Context, id int) (*Movie, error)
	Update(ctx context.Context, id int, m Movie) (*Movie, error)
	Delete(ctx context.Context, id int) (*Movie, error)
}

type Usecase struct {
	r Repository
	v *Validator
}

func NewUsecase(r Repository, v *Validator) *Usecase {
	if v == nil {
		v = NewValidator(nil)
	}
	return &Usecase{r: r, v: v}
}

func (uc *Usecase) ReadMovies(ctx context.Context, page, size int) result.Result[*result.PagedResult[Movie]] {
	if page < 1 {
		return result.Fail[*result.PagedResult[Movie]](
			errs.Errorf(errs.EINVALID, "Page must be >= 1."), http.StatusBadRequest)
	}
	if size < 1 {
		return result.Fail[*result.PagedResult[Movie]](
			errs.Errorf(errs.EINVALID, "Page size must be >= 1."), http.StatusBadRequest)
	}

	paged, err := uc.r.ReadPage(ctx, page, size)
	if err != nil {
		return storageFailure[*result.PagedResult[Movie]](err)
	}
	if paged == nil {
		return result.Fail[*result.PagedResult[Movie]](
			errs.Errorf(errs.ENOTFOUND, "Could not read movies from page %d and size %d.", page, size),
			http.StatusNotFound)
	}

	return result.OK(paged, http.StatusOK)
}

func (uc *Usecase) CreateMovie(ctx context.Context, m *Movie) result.Result[*Movie] {
	if err := uc.v.Validate(m); err != nil {
		return result.Fail[*Movie](err, http.StatusBadRequest)
	}

	created, err := uc.r.Create(ctx, *m)
	if err != nil {
		return storageFailure[*Movie](err)
	}
	if created == nil {
		return result.Fail[*Movie](
			errs.Errorf(errs.ENOTFOUND, "Could not create movie %s.", m), http.StatusNotFound)
	}

	return result.OK(created, http.StatusCreated)
}

func (uc *Usecase) ReadMovie(ctx context.Context, id int) result.Result[*Movie] {
	found, err := uc.r.ReadOne(ctx, id)
	if err != nil {
		return storageFailure[*Movie](err)
	}
	if found == nil {
		return result.Fail[*Movie](
			errs.Errorf(errs.ENOTFOUND, "Could not read movie with id %d.", id), http.StatusNotFound)
	}

	return result.OK(found, http.StatusOK)
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int, m *Movie) result.Result[*Movie] {
	if err := uc.v.Validate(m); err != nil {
		return result.Fail[*Movie](err, http.StatusBadRequest)
	}

	updated, err := uc.r.Update(ctx, id, *m)
	if err != nil {
		return storageFailure[*Movie](err)
	}
	if updated == nil {
		return result.Fail[*Movie](
			errs.Errorf(errs.ENOTFOUND, "Could not update movie %s with id %d.", m, id), http.StatusNotFound)
	}

	return result.OK(updated, http.StatusOK)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int) result.Result[*Movie] {
	deleted, err := uc.r.Delete(ctx, id)
	if err != nil {
		return storageFailure[*Movie](err)
	}
	if deleted == nil {
		return result.Fail[*Movie](
			errs.Errorf(errs.ENOTFOUND, "Could not delete movie with id %d.", id), http.StatusNotFound)
	}

	return result.OK(deleted, http.StatusOK)
}

// storageFailure turns a repository fault into a 500 Result. Application
// errors raised by the storage keep their code; anything else is internal.
func storageFailure[T any](err error) result.Result[T] {
	status := http.StatusInternalServerError
	switch errs.ErrorCode(err) {
	case errs.ECONFLICT:
		status = http.StatusConflict
	case errs.ENOTIMPLEMENTED:
		status = http.StatusNotImplemented
	}
	return result.Fail[T](err, status)
}
