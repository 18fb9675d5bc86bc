package event

import (
	"errors"
	"time"
)

var (
	// ErrNotFound covers both a missing event and an event owned by a
	// different host. Handlers answer 404 for either, on purpose, so
	// callers cannot probe for existence.
	ErrNotFound = errors.New("event not found")

	ErrAlreadyMember = errors.New("user already a member of event")
)

// Tags lists the allowed event tags. The custom "eventtag" binding rule
// checks against this set.
var Tags = []string{"Any", "Beauty", "Charity", "Family", "Food and Drink", "Free", "Sport", "Travel"}

func IsValidTag(tag string) bool {
	for _, t := range Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	HostID      string    `json:"hostId"`
	Tags        []string  `json:"tags"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=5,max=50"`
	Description string     `json:"description" binding:"omitempty,max=200"`
	HostID      string     `json:"hostId" binding:"required,uuid"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,eventtag"`
	Date        time.Time  `json:"date" binding:"required,futuredate"`
	Price       float64    `json:"price" binding:"omitempty,gte=0"`
	Location    string     `json:"location" binding:"required,min=3,max=100"`
	Members     []string   `json:"members" binding:"omitempty,dive,uuid"`
	Created     *time.Time `json:"created" binding:"omitempty,pastdate"`
}

// a full update payload, validated with the same schema as create. The
// ownership filter lives in the repo, not here.
type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=5,max=50"`
	Description string     `json:"description" binding:"omitempty,max=200"`
	HostID      string     `json:"hostId" binding:"required,uuid"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,eventtag"`
	Date        time.Time  `json:"date" binding:"required,futuredate"`
	Price       float64    `json:"price" binding:"omitempty,gte=0"`
	Location    string     `json:"location" binding:"required,min=3,max=100"`
	Members     []string   `json:"members" binding:"omitempty,dive,uuid"`
	Created     *time.Time `json:"created" binding:"omitempty,pastdate"`
}
