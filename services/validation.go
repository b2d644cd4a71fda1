package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps each failing field to a user-facing message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldMessages is keyed by "<json field path>.<tag>"
var fieldMessages = map[string]string{
	"type.required":                 "Please select an issue type",
	"type.oneof":                    "Please select a valid issue type",
	"title.required":                "Title is required",
	"title.min":                     "Title must be at least 5 characters",
	"title.max":                     "Title must be at most 200 characters",
	"description.required":          "Description is required",
	"description.min":               "Description must be at least 20 characters",
	"description.max":               "Description must be at most 2000 characters",
	"startStation.required_without": "Starting station is required",
	"endStation.required_without":   "End station is required",
	"latitude.latitude":             "Latitude must be between -90 and 90",
	"longitude.longitude":           "Longitude must be between -180 and 180",
	"priority.oneof":                "Please select a valid priority",
	"contactInfo.email.email":       "Please enter a valid email address",
	"contactInfo.phone.max":         "Phone number is too long",
	"email.required":                "Email is required",
	"email.email":                   "Please enter a valid email address",
	"password.required":             "Password is required",
	"role.required":                 "Please select your role",
	"role.oneof":                    "Please select a valid role",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks s against its validate tags and converts failures into
// a ValidationError keyed by JSON field path.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: map[string]string{}}
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		if _, seen := out.Fields[path]; seen {
			continue
		}
		msg, ok := fieldMessages[path+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", path)
		}
		out.Fields[path] = msg
	}
	return out
}
