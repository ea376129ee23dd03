package form

import (
	"net/url"

	"github.com/sakif/venue-booking/internal/model"
)

// VenueForm is the new/edit venue form.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"required,max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,max=500,http_url"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,max=120,http_url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,max=500,http_url"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// DecodeVenue reads a submitted venue form.
func DecodeVenue(values url.Values) VenueForm {
	var f VenueForm
	decode(&f, values)
	f.Genres = nonBlank(f.Genres)
	return f
}

// FromVenue fills the form from a stored venue for the edit page.
func FromVenue(v model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             cloneGenres(v.Genres),
		WebsiteLink:        v.Website,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Validate returns nil or an *apperror.ValidationErrors.
func (f VenueForm) Validate() error {
	return check(f)
}

// Apply copies the form onto v, leaving id and timestamps alone.
func (f VenueForm) Apply(v *model.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = cloneGenres(f.Genres)
	v.Website = f.WebsiteLink
	v.FacebookLink = f.FacebookLink
	v.ImageLink = f.ImageLink
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

// Venue builds a new, unsaved venue from the form.
func (f VenueForm) Venue() *model.Venue {
	v := &model.Venue{}
	f.Apply(v)
	return v
}

// HasGenre reports whether g is selected; templates use it to mark options.
func (f VenueForm) HasGenre(g string) bool {
	return contains(f.Genres, g)
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
