package handlers

import (
	"time"

	"github.com/gatherly/eventsapi/internal/domain/event"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding tags on gin's validator
// engine. Call once at startup before the router takes traffic.
func RegisterValidations() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)

	if !ok {
		return nil
	}

	if err := engine.RegisterValidation("eventtag", validEventTag); err != nil {
		return err
	}

	if err := engine.RegisterValidation("futuredate", notPastDate); err != nil {
		return err
	}

	if err := engine.RegisterValidation("pastdate", notFutureDate); err != nil {
		return err
	}

	return nil
}

func validEventTag(fl validator.FieldLevel) bool {
	tag, ok := fl.Field().Interface().(string)

	if !ok {
		return false
	}

	return event.IsValidTag(tag)
}

// notPastDate accepts today or later. The comparison truncates to the
// start of the UTC day so an event scheduled for later today passes.
func notPastDate(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)

	if !ok {
		return false
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	return !t.UTC().Truncate(24 * time.Hour).Before(today)
}

func notFutureDate(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)

	if !ok {
		return false
	}

	return !t.After(time.Now())
}

func fieldTime(fl validator.FieldLevel) (time.Time, bool) {
	t, ok := fl.Field().Interface().(time.Time)

	return t, ok
}
