package movie

import (
	"errors"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator checks the invariants every stored movie must hold. It has no
// side effects; the only outside input is the clock.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := &Validator{
		validate: validator.New(),
		now:      now,
	}
	_ = v.validate.RegisterValidation("notblank", validators.NotBlank)
	_ = v.validate.RegisterValidation("notfuture", v.notFuture)

	return v
}

// Validate returns nil for a valid movie or the *errs.Error describing the
// first violated rule, checked in this order: payload, title, year.
func (v *Validator) Validate(m *Movie) error {
	if m == nil {
		return ErrMissingPayload
	}

	err := v.validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	// field errors come back in struct order, Title before Year
	switch fe := fieldErrs[0]; fe.StructField() {
	case "Title":
		if fe.Tag() == "max" {
			return ErrTitleTooLong
		}
		return ErrEmptyTitle
	default:
		return YearOutOfRange(v.currentYear())
	}
}

func (v *Validator) currentYear() int {
	return v.now().UTC().Year()
}

func (v *Validator) notFuture(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.Int {
		return false
	}
	return fl.Field().Int() <= int64(v.currentYear())
}
