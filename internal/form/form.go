// Package form decodes and validates the HTML forms for venues, artists and
// shows.
//
// Each form is a plain struct whose `form` tags name the HTML inputs. They
// are filled by go-playground/form and their `validate` tags are checked by
// go-playground/validator. Decoding never fails: whatever the browser sent
// is kept verbatim (trimmed) so a rejected form can be rendered back to the
// user with its messages.
//
// Validate turns validator's errors into an *apperror.ValidationErrors keyed
// by input name.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	formdecoder "github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/sakif/venue-booking/internal/apperror"
)

// StartTimeLayout is how a show's start time is written into the form.
const StartTimeLayout = "2006-01-02 15:04:05"

// startTimeLayouts are tried in order when reading a submitted start time.
// datetime-local inputs send the second layout.
var startTimeLayouts = []string{
	StartTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

var (
	decoder  = newDecoder()
	validate = newValidator()
)

func newDecoder() *formdecoder.Decoder {
	d := formdecoder.NewDecoder()

	// Every string, including each entry of a multi-select, is trimmed.
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")

	// Checkboxes: the usual truthy spellings are checked. An absent box never
	// reaches this func and stays false.
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "y", "yes", "on", "true", "1":
			return true, nil
		}
		return false, nil
	}, false)

	return d
}

// decode fills dst from submitted values. The registered funcs cannot fail,
// so an error only comes from a malformed key such as "genres[x]"; the
// affected field is left empty for validation to report.
func decode(dst any, values url.Values) {
	_ = decoder.Decode(dst, values)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the HTML input name rather than the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "genre", func(fl validator.FieldLevel) bool {
		_, ok := genreSet[fl.Field().String()]
		return ok
	})
	mustRegister(v, "state", func(fl validator.FieldLevel) bool {
		_, ok := stateSet[fl.Field().String()]
		return ok
	})
	mustRegister(v, "starttime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: registering %q validation: %v", tag, err))
	}
}

// check runs the struct validation and converts the result.
func check(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("form: validating: %w", err)
	}

	verrs := &apperror.ValidationErrors{}
	for _, fe := range fieldErrs {
		verrs.Add(fieldName(fe), message(fe))
	}
	return verrs
}

// fieldName folds "genres[2]" into "genres" so a bad entry in a
// multi-select is reported against the select itself.
func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "http_url":
		return "Invalid URL."
	case "genre":
		return fmt.Sprintf("%q is not a valid genre.", fe.Value())
	case "state":
		return "Not a valid choice."
	case "starttime":
		return "Not a valid datetime value."
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}

// ParseStartTime reads a submitted start time. Values without a zone are
// taken as UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("form: unrecognised start time %q", s)
}

// nonBlank drops the empty entries a multi-select can send. The result is
// never nil.
func nonBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cloneGenres(genres []string) []string {
	out := make([]string, len(genres))
	copy(out, genres)
	return out
}
