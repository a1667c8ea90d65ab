package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventregistry/internal/domain"
)

type participantRepository struct {
	DB      *sql.DB
	dialect Dialect
}

func NewParticipantRepository(db *sql.DB, dialect Dialect) domain.ParticipantRepository {
	return &participantRepository{
		DB:      db,
		dialect: dialect,
	}
}

// Enroll runs the event lookup, duplicate check, capacity check and insert in
// one transaction. Any failure rolls the transaction back.
func (r *participantRepository) Enroll(ctx context.Context, p *domain.Participant) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacidade FROM eventos WHERE id = $1`+r.dialect.lockClause(),
		p.EventID(),
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM participantes WHERE evento_id = $1 AND LOWER(email) = LOWER($2) LIMIT 1`,
		p.EventID(), strings.TrimSpace(p.Email()),
	).Scan(&existing)
	switch {
	case err == nil:
		return domain.ErrAlreadyEnrolled
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check duplicate: %w", err)
	}

	var enrolled int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participantes WHERE evento_id = $1`,
		p.EventID(),
	).Scan(&enrolled)
	if err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if enrolled >= capacity {
		return domain.ErrEventFull
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO participantes (nome, email, checkin, evento_id) VALUES ($1, $2, 0, $3) RETURNING id`,
		p.Name(), p.Email(), p.EventID(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	p.SetID(id)
	return nil
}

// CancelByEmail removes the lowest-id participant with that email, whatever
// the event.
func (r *participantRepository) CancelByEmail(ctx context.Context, email string) (bool, error) {
	query := `
		DELETE FROM participantes
		WHERE id = (
			SELECT id FROM participantes WHERE LOWER(email) = LOWER($1) ORDER BY id LIMIT 1
		)
	`
	result, err := r.DB.ExecContext(ctx, query, strings.TrimSpace(email))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CheckIn flips the check-in flag of the lowest-id participant with that email.
func (r *participantRepository) CheckIn(ctx context.Context, email string) (res domain.CheckInResult, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.CheckInNotFound, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var (
		id      int64
		checkin int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, checkin FROM participantes WHERE LOWER(email) = LOWER($1) ORDER BY id LIMIT 1`+r.dialect.lockClause(),
		strings.TrimSpace(email),
	).Scan(&id, &checkin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = tx.Rollback()
			return domain.CheckInNotFound, nil
		}
		return domain.CheckInNotFound, fmt.Errorf("find participant: %w", err)
	}
	if checkin == 1 {
		_ = tx.Rollback()
		return domain.CheckInAlreadyDone, nil
	}

	if _, err = tx.ExecContext(ctx, `UPDATE participantes SET checkin = 1 WHERE id = $1`, id); err != nil {
		return domain.CheckInNotFound, fmt.Errorf("update checkin: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return domain.CheckInNotFound, fmt.Errorf("commit transaction: %w", err)
	}
	return domain.CheckInDone, nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	query := `
		SELECT id, nome, email, checkin, evento_id
		FROM participantes
		WHERE evento_id = $1
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		var (
			id, evID    int64
			name, email string
			checkin     int
		)
		if err := rows.Scan(&id, &name, &email, &checkin, &evID); err != nil {
			return nil, err
		}
		participants = append(participants, domain.RestoreParticipant(id, name, email, checkin == 1, evID))
	}
	return participants, rows.Err()
}
