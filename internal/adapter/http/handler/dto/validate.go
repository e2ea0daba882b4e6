package dto

import (
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("safepath", isSafePath)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks s and returns field -> message, or nil if s is valid.
func Validate(v *validator.Validate, s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "safepath":
		return "must be a plain directory path without '..' segments"
	default:
		return fmt.Sprintf("failed on %s validation", fe.Tag())
	}
}

// isSafePath rejects NUL bytes and parent directory segments.
func isSafePath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if strings.ContainsRune(p, 0) {
		return false
	}
	return !slices.Contains(strings.Split(filepath.ToSlash(p), "/"), "..")
}
