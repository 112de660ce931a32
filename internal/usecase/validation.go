package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
)

var validate = sync.OnceValue(newValidator)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("order_status", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})

	return v
}

// validateStruct checks struct tags and converts failures into *ValidationError.
func validateStruct(s any) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fieldName(fe)
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = fieldMessage(fe)
	}
	return &domainErrors.ValidationError{Message: domainErrors.ErrValidation.Error(), Fields: fields}
}

// fieldName strips the struct prefix and element index so list errors report the list field.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "this field is required"
	case "notblank":
		return "this field may not be blank"
	case "email":
		return "enter a valid email address"
	case "url", "http_url":
		return "enter a valid URL"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "eqfield":
		return "password fields didn't match"
	case "order_status":
		return fmt.Sprintf("%q is not a valid choice", fe.Value())
	default:
		return fmt.Sprintf("invalid value (failed on %q)", fe.Tag())
	}
}
