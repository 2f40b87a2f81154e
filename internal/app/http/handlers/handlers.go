package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"leadway/caution_backend/internal/domain/quote"
	"leadway/caution_backend/internal/service/caution"
)

type Handlers struct {
	Svc      *caution.Service
	validate *validator.Validate
}

func New(svc *caution.Service) *Handlers {
	return &Handlers{Svc: svc, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("coverage", func(fl validator.FieldLevel) bool {
		_, ok := quote.ParseCoverage(fl.Field().String())
		return ok
	})
	return v
}
