// Package handler contains HTTP request handlers for the booking directory.
//
// WHAT IS A HANDLER?
// In Go, an HTTP handler is anything that implements the http.Handler interface:
//
//	type Handler interface {
//	    ServeHTTP(ResponseWriter, *Request)
//	}
//
// Or more commonly, we use http.HandlerFunc, a function with the right signature
// that automatically satisfies the Handler interface. Chi's router accepts these directly.
//
// HANDLER RESPONSIBILITIES:
// 1. Decode the request (URL params, form fields)
// 2. Call the service layer
// 3. Render a template, or queue a flash message and redirect
//
// Handlers should NOT contain business logic: validation lives in package
// form, derivation in package viewmodel, orchestration in package service.
package handler

import (
	"errors"
	"net/http"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/form"
	"github.com/sakif/venue-booking/internal/viewmodel"
)

// formView is the data for every create/edit form page.
type formView struct {
	// Action is the URL the form posts to.
	Action  string
	Heading string
	Form    any
	Errors  map[string]string
	Genres  []string
	States  []string

	// Options for the show form's selects.
	Artists []viewmodel.Summary
	Venues  []viewmodel.Summary
}

func newFormView(action, heading string, f any) formView {
	return formView{
		Action:  action,
		Heading: heading,
		Form:    f,
		Errors:  map[string]string{},
		Genres:  form.Genres,
		States:  form.States,
	}
}

// fieldErrors extracts per-field messages from a rejected form.
func fieldErrors(err error) (map[string]string, bool) {
	var verrs *apperror.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Fields, true
	}
	// A show naming an unknown artist or venue is reported on that select.
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "" && errors.Is(err, apperror.ErrReference) {
		return map[string]string{appErr.Field: appErr.Message}, true
	}
	return nil, false
}

// parseForm reads the request body. A body that cannot be parsed is treated
// as an empty submission and fails validation like one.
func parseForm(r *http.Request) {
	_ = r.ParseForm()
}
