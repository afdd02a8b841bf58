package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// ProgressRepository keeps one progress record per profile in a sqlite database.
// List columns hold JSON arrays.
type ProgressRepository struct {
	db      *sql.DB
	profile string
}

// NewProgressRepository creates a new ProgressRepository for the given profile.
func NewProgressRepository(db *sql.DB, profile string) *ProgressRepository {
	return &ProgressRepository{db: db, profile: profile}
}

// Load retrieves the profile's record. Returns nil when none exists.
func (r *ProgressRepository) Load(ctx context.Context) (*entities.Progress, error) {
	var (
		answered, wrong, times string
		correct, total         sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT already_answered_uuids, wrong_answered_uuids, correct_count, total_count, times
		FROM quiz_progress WHERE profile = ?`, r.profile,
	).Scan(&answered, &wrong, &correct, &total, &times)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var p entities.Progress
	if err := json.Unmarshal([]byte(answered), &p.AlreadyAnsweredUUIDs); err != nil {
		return nil, fmt.Errorf("%w: decode answered: %w", entities.ErrProgressCorrupt, err)
	}
	if err := json.Unmarshal([]byte(wrong), &p.WrongAnsweredUUIDs); err != nil {
		return nil, fmt.Errorf("%w: decode wrong: %w", entities.ErrProgressCorrupt, err)
	}
	if err := json.Unmarshal([]byte(times), &p.Times); err != nil {
		return nil, fmt.Errorf("%w: decode times: %w", entities.ErrProgressCorrupt, err)
	}
	if correct.Valid {
		v := int(correct.Int64)
		p.CorrectCount = &v
	}
	if total.Valid {
		v := int(total.Int64)
		p.TotalCount = &v
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", r.profile, err)
	}

	return &p, nil
}

// Save replaces the profile's record in a single statement.
func (r *ProgressRepository) Save(ctx context.Context, p *entities.Progress) error {
	answered, err := encodeList(p.AlreadyAnsweredUUIDs)
	if err != nil {
		return err
	}
	wrong, err := encodeList(p.WrongAnsweredUUIDs)
	if err != nil {
		return err
	}
	times, err := encodeList(p.Times)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quiz_progress (
			profile, already_answered_uuids, wrong_answered_uuids,
			correct_count, total_count, times, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (profile) DO UPDATE SET
			already_answered_uuids = excluded.already_answered_uuids,
			wrong_answered_uuids = excluded.wrong_answered_uuids,
			correct_count = excluded.correct_count,
			total_count = excluded.total_count,
			times = excluded.times,
			updated_at = excluded.updated_at`,
		r.profile, answered, wrong, nullInt(p.CorrectCount), nullInt(p.TotalCount), times, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	return nil
}

func encodeList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
