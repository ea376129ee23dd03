package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/flash"
	"github.com/sakif/venue-booking/internal/form"
	"github.com/sakif/venue-booking/internal/service"
)

// VenueHandler serves the /venues routes.
type VenueHandler struct {
	svc    *service.VenueService
	render *Renderer
	logger *slog.Logger
}

func NewVenueHandler(svc *service.VenueService, render *Renderer, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{svc: svc, render: render, logger: logger}
}

// HandleList handles GET /venues: venues grouped by city and state.
func (h *VenueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	areas, err := h.svc.Areas(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/venues", "Venues", areas)
}

// HandleSearch handles POST /venues/search.
func (h *VenueHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	parseForm(r)
	res, err := h.svc.Search(r.Context(), r.PostFormValue("search_term"))
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/search_venues", "Search Venues", res)
}

// HandleShow handles GET /venues/{id}.
func (h *VenueHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/venue", d.Name, d)
}

// HandleNew handles GET /venues/create.
func (h *VenueHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	view := newFormView("/venues/create", "List a new venue", form.VenueForm{})
	h.render.Page(w, r, http.StatusOK, "forms/venue", "New Venue", view)
}

// HandleCreate handles POST /venues/create.
//
// OUTCOMES:
//   - invalid form  → the form again, 422, with messages; nothing written
//   - write failure → flash "could not be listed", redirect home
//   - success       → flash "was listed!", redirect home
func (h *VenueHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	parseForm(r)
	f := form.DecodeVenue(r.PostForm)

	venue, err := h.svc.Create(r.Context(), f)
	if err != nil {
		if fields, ok := fieldErrors(err); ok {
			view := newFormView("/venues/create", "List a new venue", f)
			view.Errors = fields
			h.render.Page(w, r, http.StatusUnprocessableEntity, "forms/venue", "New Venue", view)
			return
		}
		h.render.flash(w, r, flash.Error, "An error occurred. Venue "+f.Name+" could not be listed.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.flash(w, r, flash.Success, "Venue "+venue.Name+" was listed!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleEdit handles GET /venues/{id}/edit: the form pre-filled from the
// stored venue.
func (h *VenueHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	venue, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	view := newFormView("/venues/"+venue.ID+"/edit", "Edit venue "+venue.Name, form.FromVenue(*venue))
	h.render.Page(w, r, http.StatusOK, "forms/venue", "Edit Venue", view)
}

// HandleUpdate handles POST /venues/{id}/edit.
func (h *VenueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	parseForm(r)
	f := form.DecodeVenue(r.PostForm)

	venue, err := h.svc.Update(r.Context(), id, f)
	switch {
	case err == nil:
		h.render.flash(w, r, flash.Success, "Venue "+venue.Name+" was updated.")
		http.Redirect(w, r, "/venues/"+venue.ID, http.StatusSeeOther)
	case errors.Is(err, apperror.ErrNotFound):
		h.render.NotFound(w, r)
	default:
		if fields, ok := fieldErrors(err); ok {
			// The heading names the stored venue, not the rejected input.
			heading := "Edit venue"
			if stored, gerr := h.svc.Get(r.Context(), id); gerr == nil {
				heading += " " + stored.Name
			}
			view := newFormView("/venues/"+id+"/edit", heading, f)
			view.Errors = fields
			h.render.Page(w, r, http.StatusUnprocessableEntity, "forms/venue", "Edit Venue", view)
			return
		}
		h.render.flash(w, r, flash.Error, "An error occurred. Venue "+f.Name+" could not be updated.")
		http.Redirect(w, r, "/venues/"+id, http.StatusSeeOther)
	}
}

// HandleDelete handles GET /venues/{id}/delete. The venue's shows go with it.
func (h *VenueHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		h.render.flash(w, r, flash.Success, "Venue deleted.")
	case errors.Is(err, apperror.ErrNotFound):
		h.render.NotFound(w, r)
		return
	default:
		h.render.flash(w, r, flash.Error, "An error occurred. Venue could not be deleted.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDeleteAPI handles DELETE /venues/{id} for script callers: 204 on
// success, a JSON error otherwise (404 when the venue does not exist).
func (h *VenueHandler) HandleDeleteAPI(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
