package postgres

import (
	"context"
	"errors"

	"github.com/gatherly/eventsapi/internal/domain/event"
	"github.com/gatherly/eventsapi/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, title, description, host_id, tags, date, price, location, members, created_at`

type EventsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanEvent(row pgx.Row, e *event.Event) error {
	return row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.HostID,
		&e.Tags,
		&e.Date,
		&e.Price,
		&e.Location,
		&e.Members,
		&e.CreatedAt,
	)
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	err := r.observe("events.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO events (`+eventColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			e.ID, e.Title, e.Description, e.HostID, e.Tags, e.Date, e.Price, e.Location, e.Members, e.CreatedAt,
		)
		return execErr
	})

	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

// List returns every event, newest date first.
func (r *EventsRepo) List(ctx context.Context) (events []event.Event, err error) {
	var rows pgx.Rows

	err = r.observe("events.list", func() error {
		var qerr error
		rows, qerr = r.pool.Query(ctx,
			`SELECT `+eventColumns+`
			 FROM events
			 ORDER BY date DESC, id DESC`,
		)
		return qerr
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	events = make([]event.Event, 0)

	for rows.Next() {
		var e event.Event

		if scanErr := scanEvent(rows, &e); scanErr != nil {
			return nil, scanErr
		}

		events = append(events, e)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return events, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var e event.Event

	err := r.observe("events.get_by_id", func() error {
		return scanEvent(r.pool.QueryRow(ctx,
			`SELECT `+eventColumns+` FROM events WHERE id = $1`, id), &e)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// UpdateOwned updates an event only when hostID owns it. A missing id and
// a mismatched owner both come back as ErrNotFound so the two cases are
// indistinguishable to the caller.
func (r *EventsRepo) UpdateOwned(ctx context.Context, id, hostID string, req event.UpdateEventRequest) (event.Event, error) {
	var e event.Event

	tags := req.Tags

	if len(tags) == 0 {
		tags = []string{"Any"}
	}

	members := req.Members

	if members == nil {
		members = []string{}
	}

	err := r.observe("events.update_owned", func() error {
		return scanEvent(r.pool.QueryRow(ctx,
			`UPDATE events
				SET title = $3,
					description = $4,
					host_id = $5,
					tags = $6,
					date = $7,
					price = $8,
					location = $9,
					members = $10
			 WHERE id = $1 AND host_id = $2
			 RETURNING `+eventColumns,
			id,
			hostID,
			req.Title,
			req.Description,
			req.HostID,
			tags,
			req.Date,
			req.Price,
			req.Location,
			members,
		), &e)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// DeleteOwned removes an event under the same ownership filter as
// UpdateOwned and returns the removed record.
func (r *EventsRepo) DeleteOwned(ctx context.Context, id, hostID string) (event.Event, error) {
	var e event.Event

	err := r.observe("events.delete_owned", func() error {
		return scanEvent(r.pool.QueryRow(ctx,
			`DELETE FROM events
			 WHERE id = $1 AND host_id = $2
			 RETURNING `+eventColumns,
			id, hostID), &e)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// AddMember appends userID to the event's member list. The guard in the
// WHERE clause makes the append atomic, so two concurrent joins cannot
// produce a duplicate entry.
func (r *EventsRepo) AddMember(ctx context.Context, id, userID string) (event.Event, error) {
	var e event.Event

	err := r.observe("events.add_member", func() error {
		return scanEvent(r.pool.QueryRow(ctx,
			`UPDATE events
				SET members = array_append(members, $2::text)
			 WHERE id = $1 AND NOT (members @> ARRAY[$2::text])
			 RETURNING `+eventColumns,
			id, userID), &e)
	})

	if err == nil {
		return e, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return event.Event{}, err
	}

	// no row matched: either the event is missing or the user already
	// joined. Look the event up to tell the two apart.

	var dummy string

	err = r.observe("events.add_member.exists_check", func() error {
		return r.pool.QueryRow(ctx, `SELECT id FROM events WHERE id = $1`, id).Scan(&dummy)
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return event.Event{}, event.ErrNotFound
	}

	if err != nil {
		return event.Event{}, err
	}

	return event.Event{}, event.ErrAlreadyMember
}
