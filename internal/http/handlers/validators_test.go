package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// an event later today is still schedulable; only whole past days are
// rejected
func TestCreateEventAcceptsToday(t *testing.T) {
	r, _, tokens := newEventsTestServer(t)
	hostID := uuid.NewString()

	today := time.Now().UTC().Format(time.RFC3339)

	w := doJSON(r, http.MethodPost, "/api/events", hostToken(t, tokens, hostID),
		eventPayload(hostID, map[string]interface{}{"date": today}))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestCreateEventRejectsFutureCreated(t *testing.T) {
	r, _, tokens := newEventsTestServer(t)
	hostID := uuid.NewString()

	future := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)

	w := doJSON(r, http.MethodPost, "/api/events", hostToken(t, tokens, hostID),
		eventPayload(hostID, map[string]interface{}{"created": future}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}
}

func TestEveryAllowedTagBinds(t *testing.T) {
	r, _, tokens := newEventsTestServer(t)
	hostID := uuid.NewString()
	token := hostToken(t, tokens, hostID)

	for _, tag := range []string{"Any", "Beauty", "Charity", "Family", "Food and Drink", "Free", "Sport", "Travel"} {
		w := doJSON(r, http.MethodPost, "/api/events", token,
			eventPayload(hostID, map[string]interface{}{"tags": []string{tag}}))

		if w.Code != http.StatusOK {
			t.Errorf("tag %q: status = %d, body = %s", tag, w.Code, w.Body.String())
		}
	}
}
