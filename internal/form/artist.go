package form

import (
	"net/url"

	"github.com/sakif/venue-booking/internal/model"
)

// ArtistForm is the new/edit artist form. It has no address.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"required,max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,max=500,http_url"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,max=120,http_url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,max=500,http_url"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

func DecodeArtist(values url.Values) ArtistForm {
	var f ArtistForm
	decode(&f, values)
	f.Genres = nonBlank(f.Genres)
	return f
}

func FromArtist(a model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             cloneGenres(a.Genres),
		WebsiteLink:        a.Website,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f ArtistForm) Validate() error {
	return check(f)
}

func (f ArtistForm) Apply(a *model.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = cloneGenres(f.Genres)
	a.Website = f.WebsiteLink
	a.FacebookLink = f.FacebookLink
	a.ImageLink = f.ImageLink
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

func (f ArtistForm) Artist() *model.Artist {
	a := &model.Artist{}
	f.Apply(a)
	return a
}

func (f ArtistForm) HasGenre(g string) bool {
	return contains(f.Genres, g)
}
