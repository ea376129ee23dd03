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

// ArtistHandler serves the /artists routes. It mirrors VenueHandler.
type ArtistHandler struct {
	svc    *service.ArtistService
	render *Renderer
	logger *slog.Logger
}

func NewArtistHandler(svc *service.ArtistService, render *Renderer, logger *slog.Logger) *ArtistHandler {
	return &ArtistHandler{svc: svc, render: render, logger: logger}
}

func (h *ArtistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	artists, err := h.svc.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/artists", "Artists", artists)
}

func (h *ArtistHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	parseForm(r)
	res, err := h.svc.Search(r.Context(), r.PostFormValue("search_term"))
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/search_artists", "Search Artists", res)
}

func (h *ArtistHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/artist", d.Name, d)
}

func (h *ArtistHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	view := newFormView("/artists/create", "List a new artist", form.ArtistForm{})
	h.render.Page(w, r, http.StatusOK, "forms/artist", "New Artist", view)
}

func (h *ArtistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	parseForm(r)
	f := form.DecodeArtist(r.PostForm)

	artist, err := h.svc.Create(r.Context(), f)
	if err != nil {
		if fields, ok := fieldErrors(err); ok {
			view := newFormView("/artists/create", "List a new artist", f)
			view.Errors = fields
			h.render.Page(w, r, http.StatusUnprocessableEntity, "forms/artist", "New Artist", view)
			return
		}
		h.render.flash(w, r, flash.Error, "An error occurred. Artist "+f.Name+" could not be listed.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.flash(w, r, flash.Success, "Artist "+artist.Name+" was listed!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ArtistHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	artist, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	view := newFormView("/artists/"+artist.ID+"/edit", "Edit artist "+artist.Name, form.FromArtist(*artist))
	h.render.Page(w, r, http.StatusOK, "forms/artist", "Edit Artist", view)
}

func (h *ArtistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	parseForm(r)
	f := form.DecodeArtist(r.PostForm)

	artist, err := h.svc.Update(r.Context(), id, f)
	switch {
	case err == nil:
		h.render.flash(w, r, flash.Success, "Artist "+artist.Name+" was updated.")
		http.Redirect(w, r, "/artists/"+artist.ID, http.StatusSeeOther)
	case errors.Is(err, apperror.ErrNotFound):
		h.render.NotFound(w, r)
	default:
		if fields, ok := fieldErrors(err); ok {
			heading := "Edit artist"
			if stored, gerr := h.svc.Get(r.Context(), id); gerr == nil {
				heading += " " + stored.Name
			}
			view := newFormView("/artists/"+id+"/edit", heading, f)
			view.Errors = fields
			h.render.Page(w, r, http.StatusUnprocessableEntity, "forms/artist", "Edit Artist", view)
			return
		}
		h.render.flash(w, r, flash.Error, "An error occurred. Artist "+f.Name+" could not be updated.")
		http.Redirect(w, r, "/artists/"+id, http.StatusSeeOther)
	}
}

// HandleDelete handles GET /artists/{id}/delete.
func (h *ArtistHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		h.render.flash(w, r, flash.Success, "Artist deleted.")
	case errors.Is(err, apperror.ErrNotFound):
		h.render.NotFound(w, r)
		return
	default:
		h.render.flash(w, r, flash.Error, "An error occurred. Artist could not be deleted.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
