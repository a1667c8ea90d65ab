package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"eventregistry/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

// CountsByEvent includes events without participants.
func (r *reportRepository) CountsByEvent(ctx context.Context) ([]*domain.EventEnrollment, error) {
	query := `
		SELECT e.id, e.nome, COUNT(p.id)
		FROM eventos e
		LEFT JOIN participantes p ON p.evento_id = e.id
		GROUP BY e.id, e.nome
		ORDER BY e.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]*domain.EventEnrollment, 0)
	for rows.Next() {
		c := &domain.EventEnrollment{}
		if err := rows.Scan(&c.EventID, &c.Name, &c.Enrolled); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *reportRepository) EventsWithAvailability(ctx context.Context) ([]*domain.EventAvailability, error) {
	query := `
		SELECT e.id, e.nome, e.capacidade - COUNT(p.id)
		FROM eventos e
		LEFT JOIN participantes p ON p.evento_id = e.id
		GROUP BY e.id, e.nome, e.capacidade
		HAVING e.capacidade - COUNT(p.id) > 0
		ORDER BY e.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	available := make([]*domain.EventAvailability, 0)
	for rows.Next() {
		a := &domain.EventAvailability{}
		if err := rows.Scan(&a.EventID, &a.Name, &a.Remaining); err != nil {
			return nil, err
		}
		available = append(available, a)
	}
	return available, rows.Err()
}

// RevenueByEventName uses the lowest-id event whose name matches case-insensitively.
func (r *reportRepository) RevenueByEventName(ctx context.Context, name string) (float64, error) {
	query := `
		SELECT e.preco, COUNT(p.id)
		FROM eventos e
		LEFT JOIN participantes p ON p.evento_id = e.id
		WHERE LOWER(e.nome) = LOWER($1)
		GROUP BY e.id, e.preco
		ORDER BY e.id
		LIMIT 1
	`
	var (
		price    float64
		enrolled int
	)
	err := r.DB.QueryRowContext(ctx, query, strings.TrimSpace(name)).Scan(&price, &enrolled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return price * float64(enrolled), nil
}

func (r *reportRepository) Revenues(ctx context.Context) ([]*domain.EventRevenue, error) {
	query := `
		SELECT e.id, e.nome, e.preco, COUNT(p.id)
		FROM eventos e
		LEFT JOIN participantes p ON p.evento_id = e.id
		GROUP BY e.id, e.nome, e.preco
		ORDER BY e.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenues := make([]*domain.EventRevenue, 0)
	for rows.Next() {
		var (
			rev      = &domain.EventRevenue{}
			price    float64
			enrolled int
		)
		if err := rows.Scan(&rev.EventID, &rev.Name, &price, &enrolled); err != nil {
			return nil, err
		}
		rev.Revenue = price * float64(enrolled)
		revenues = append(revenues, rev)
	}
	return revenues, rows.Err()
}
