// Package model defines the records persisted by the booking directory.
// These structs mirror table rows only; anything computed on read (show
// counts, past/upcoming splits) lives in package viewmodel.
package model

import "time"

// Venue is a place that hosts shows.
//
// Genres is never nil: repositories normalise a missing value to an empty
// slice so templates and callers can range over it without a nil check.
// SeekingDescription only carries meaning while SeekingTalent is true.
type Venue struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Genres             []string  `json:"genres"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	FacebookLink       string    `json:"facebookLink"`
	SeekingTalent      bool      `json:"seekingTalent"`
	SeekingDescription string    `json:"seekingDescription"`
	ImageLink          string    `json:"imageLink"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
