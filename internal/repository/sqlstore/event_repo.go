package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"eventregistry/internal/domain"
)

const eventColumns = `id, nome, data, local, capacidade, categoria, preco, extra, tipo`

type eventRepository struct {
	DB     *sql.DB
	logger *slog.Logger
}

func NewEventRepository(db *sql.DB, logger *slog.Logger) domain.EventRepository {
	return &eventRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO eventos (nome, data, local, capacidade, categoria, preco, extra, tipo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		e.Name(), e.DateText(), e.Location(), e.Capacity(), e.Category(), e.Price(), e.Extra(), string(e.Kind()),
	).Scan(&id)
	if err != nil {
		return err
	}
	e.SetID(id)
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM eventos ORDER BY id`)
}

func (r *eventRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM eventos WHERE LOWER(categoria) = LOWER($1) ORDER BY id`
	return r.queryEvents(ctx, query, strings.TrimSpace(category))
}

func (r *eventRepository) ListByDate(ctx context.Context, date string) ([]*domain.Event, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return []*domain.Event{}, nil
	}
	query := `SELECT ` + eventColumns + ` FROM eventos WHERE data = $1 ORDER BY id`
	return r.queryEvents(ctx, query, d.Format(domain.DateLayout))
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM eventos WHERE id = $1`
	e, err := r.scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// scanEvent rebuilds the variant from the tipo column.
func (r *eventRepository) scanEvent(s rowScanner) (*domain.Event, error) {
	var (
		id                             int64
		name, date, location, category string
		capacity                       int
		price                          float64
		extra                          sql.NullString
		tipo                           string
	)
	if err := s.Scan(&id, &name, &date, &location, &capacity, &category, &price, &extra, &tipo); err != nil {
		return nil, err
	}
	kind, ok := domain.KindFromStored(tipo)
	if !ok {
		r.logger.Warn("unknown event kind, reading as talk", "event_id", id, "tipo", tipo)
	}
	return domain.RestoreEvent(id, kind, name, date, location, capacity, category, price, extra.String)
}
