package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gatherly/eventsapi/internal/cache"
	"github.com/gatherly/eventsapi/internal/domain/event"
	"github.com/gatherly/eventsapi/internal/http/middlewares"
	"github.com/gatherly/eventsapi/internal/utils"
	"github.com/gin-gonic/gin"
)

const eventsListCacheKey = "events:list:v1"

type EventsStore interface {
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	List(ctx context.Context) ([]event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	UpdateOwned(ctx context.Context, id, hostID string, req event.UpdateEventRequest) (event.Event, error)
	DeleteOwned(ctx context.Context, id, hostID string) (event.Event, error)
	AddMember(ctx context.Context, id, userID string) (event.Event, error)
}

type EventsHandler struct {
	events EventsStore
	cache  cache.Store
}

func NewEventsHandler(events EventsStore, store cache.Store) *EventsHandler {
	return &EventsHandler{
		events: events,
		cache:  store,
	}
}

func (h *EventsHandler) invalidateList(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, eventsListCacheKey)
	}
}

// ListEvents returns every event, newest date first. The marshaled list
// is cached so repeat reads skip the store, and both paths answer with
// an ETag.
func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	if h.cache != nil {
		if body, ok := h.cache.Get(reqCtx, eventsListCacheKey); ok {
			RespondRawJSONWithETag(ctx, http.StatusOK, body)
			return
		}
	}

	events, err := h.events.List(reqCtx)

	if err != nil {
		slog.ErrorContext(reqCtx, "event list failed", "error", err)
		RespondInternal(ctx, "Failed to fetch events.")
		return
	}

	body, err := json.Marshal(events)

	if err != nil {
		RespondInternal(ctx, "Failed to encode response.")
		return
	}

	if h.cache != nil {
		h.cache.Set(reqCtx, eventsListCacheKey, body)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

// GetEventByID returns a trimmed projection of one event. List callers
// already hold the full records, so the detail endpoint only serves the
// fields the share page needs.
func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "Invalid event id.", nil)
		return
	}

	e, err := h.events.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "The event with the given ID was not found.")
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "event lookup failed", "error", err)
		RespondInternal(ctx, "Failed to fetch event.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":    e.ID,
		"title": e.Title,
		"date":  e.Date,
	})
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.events.Create(ctx.Request.Context(), req)

	if err != nil {
		slog.ErrorContext(ctx.Request.Context(), "event create failed", "error", err)
		RespondInternal(ctx, "Failed to create event.")
		return
	}

	h.invalidateList(ctx.Request.Context())

	ctx.JSON(http.StatusOK, e)
}

// UpdateEvent replaces an event the caller hosts. An event that exists
// under another host answers the same 404 as a missing one.
func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "Invalid event id.", nil)
		return
	}

	callerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Access denied. No token provided.")
		return
	}

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.events.UpdateOwned(ctx.Request.Context(), id, callerID, req)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "The event with the given ID was not found.")
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "event update failed", "error", err)
		RespondInternal(ctx, "Failed to update event.")
		return
	}

	h.invalidateList(ctx.Request.Context())

	ctx.JSON(http.StatusOK, e)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "Invalid event id.", nil)
		return
	}

	callerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Access denied. No token provided.")
		return
	}

	e, err := h.events.DeleteOwned(ctx.Request.Context(), id, callerID)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "The event with the given ID was not found.")
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "event delete failed", "error", err)
		RespondInternal(ctx, "Failed to delete event.")
		return
	}

	h.invalidateList(ctx.Request.Context())

	ctx.JSON(http.StatusOK, e)
}

// JoinEvent adds the caller to the event's member list.
func (h *EventsHandler) JoinEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "Invalid event id.", nil)
		return
	}

	callerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Access denied. No token provided.")
		return
	}

	e, err := h.events.AddMember(ctx.Request.Context(), id, callerID)

	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			RespondNotFound(ctx, "The event with the given ID was not found.")
		case errors.Is(err, event.ErrAlreadyMember):
			RespondConflict(ctx, "already_joined", "User already joined this event.")
		default:
			slog.ErrorContext(ctx.Request.Context(), "event join failed", "error", err)
			RespondInternal(ctx, "Failed to join event.")
		}
		return
	}

	h.invalidateList(ctx.Request.Context())

	ctx.JSON(http.StatusOK, e)
}
