package event

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateEventRequest) Event {
	tags := req.Tags

	if len(tags) == 0 {
		tags = []string{"Any"}
	}

	members := req.Members

	if members == nil {
		members = []string{}
	}

	created := time.Now().UTC()

	if req.Created != nil {
		created = req.Created.UTC()
	}

	return Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		HostID:      req.HostID,
		Tags:        tags,
		Date:        req.Date,
		Price:       req.Price,
		Location:    req.Location,
		Members:     members,
		CreatedAt:   created,
	}
}
