package model

import "time"

// Artist is a performer that plays shows at venues.
type Artist struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Genres             []string  `json:"genres"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	FacebookLink       string    `json:"facebookLink"`
	SeekingVenue       bool      `json:"seekingVenue"`
	SeekingDescription string    `json:"seekingDescription"`
	ImageLink          string    `json:"imageLink"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
