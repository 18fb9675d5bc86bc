package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gatherly/eventsapi/internal/domain/event"
)

// EventsRepo is a map-backed stand-in for the postgres repo, with the same
// ownership semantics. Used by tests that exercise the full router without
// a database.
type EventsRepo struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[string]event.Event),
	}
}

func (r *EventsRepo) Create(_ context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[e.ID] = e
	r.mu.Unlock()

	return e, nil
}

func (r *EventsRepo) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()

	out := make([]event.Event, 0, len(r.items))

	for _, e := range r.items {
		out = append(out, e)
	}
	r.mu.RUnlock()

	// newest date first, id as tiebreaker, matching the SQL ordering
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *EventsRepo) GetByID(_ context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

func (r *EventsRepo) UpdateOwned(_ context.Context, id, hostID string, req event.UpdateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok || e.HostID != hostID {
		// same error for "missing" and "not owned"
		return event.Event{}, event.ErrNotFound
	}

	tags := req.Tags

	if len(tags) == 0 {
		tags = []string{"Any"}
	}

	members := req.Members

	if members == nil {
		members = []string{}
	}

	e.Title = req.Title
	e.Description = req.Description
	e.HostID = req.HostID
	e.Tags = tags
	e.Date = req.Date
	e.Price = req.Price
	e.Location = req.Location
	e.Members = members

	r.items[id] = e

	return e, nil
}

func (r *EventsRepo) DeleteOwned(_ context.Context, id, hostID string) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok || e.HostID != hostID {
		return event.Event{}, event.ErrNotFound
	}

	delete(r.items, id)

	return e, nil
}

func (r *EventsRepo) AddMember(_ context.Context, id, userID string) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	for _, m := range e.Members {
		if m == userID {
			return event.Event{}, event.ErrAlreadyMember
		}
	}

	e.Members = append(append([]string{}, e.Members...), userID)
	r.items[id] = e

	return e, nil
}
