package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/infra/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_progress (
	profile                TEXT PRIMARY KEY,
	already_answered_uuids TEXT[] NOT NULL DEFAULT '{}',
	wrong_answered_uuids   TEXT[] NOT NULL DEFAULT '{}',
	correct_count          INTEGER,
	total_count            INTEGER,
	times                  DOUBLE PRECISION[] NOT NULL DEFAULT '{}',
	updated_at             TIMESTAMPTZ NOT NULL
)`

// ProgressRepository keeps one progress record per profile in PostgreSQL.
type ProgressRepository struct {
	db      postgres.DBTX
	tx      *postgres.Transactor
	profile string
}

// NewProgressRepository creates a new ProgressRepository for the given profile.
func NewProgressRepository(db postgres.DBTX, tx *postgres.Transactor, profile string) *ProgressRepository {
	return &ProgressRepository{db: db, tx: tx, profile: profile}
}

// Migrate creates the progress table if it does not exist.
func (r *ProgressRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate quiz_progress: %w", err)
	}
	return nil
}

// Load retrieves the profile's record. Returns nil when none exists and an
// error wrapping entities.ErrProgressCorrupt when the stored row is invalid.
func (r *ProgressRepository) Load(ctx context.Context) (*entities.Progress, error) {
	query := `
		SELECT already_answered_uuids, wrong_answered_uuids, correct_count, total_count, times
		FROM quiz_progress
		WHERE profile = $1
	`

	var p entities.Progress
	err := r.db.QueryRow(ctx, query, r.profile).Scan(
		&p.AlreadyAnsweredUUIDs,
		&p.WrongAnsweredUUIDs,
		&p.CorrectCount,
		&p.TotalCount,
		&p.Times,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", r.profile, err)
	}

	return &p, nil
}

// Save replaces the profile's record within a transaction.
func (r *ProgressRepository) Save(ctx context.Context, p *entities.Progress) error {
	query := `
		INSERT INTO quiz_progress (
			profile, already_answered_uuids, wrong_answered_uuids,
			correct_count, total_count, times, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile) DO UPDATE SET
			already_answered_uuids = EXCLUDED.already_answered_uuids,
			wrong_answered_uuids = EXCLUDED.wrong_answered_uuids,
			correct_count = EXCLUDED.correct_count,
			total_count = EXCLUDED.total_count,
			times = EXCLUDED.times,
			updated_at = EXCLUDED.updated_at
	`

	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(
			ctx,
			query,
			r.profile,
			nonNil(p.AlreadyAnsweredUUIDs),
			nonNil(p.WrongAnsweredUUIDs),
			p.CorrectCount,
			p.TotalCount,
			nonNilTimes(p.Times),
			time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}
		return nil
	})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nonNilTimes(times []float64) []float64 {
	if times == nil {
		return []float64{}
	}
	return times
}
