package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/models"
)

var (
	ErrSideNotFound    = errors.New("friendship side not found")
	ErrVersionConflict = errors.New("friendship side version conflict")
)

// mutateAttempts bounds optimistic-lock retries on a contended side.
const mutateAttempts = 3

// FriendshipRepository defines interactions with per-side friendship documents.
type FriendshipRepository interface {
	Get(ctx context.Context, ownerID, friendID string) (models.FriendshipSide, error)
	Mutate(ctx context.Context, ownerID, friendID string, fn func(*models.MessagingHistory) error) (models.FriendshipSide, error)
	ListActive(ctx context.Context, ownerID string, since time.Time) ([]models.FriendshipSide, error)
	ListStreaks(ctx context.Context, ownerID string) ([]models.FriendshipSide, error)
}

// FriendshipRepo is a sqlx-backed repository.
type FriendshipRepo struct {
	db *sqlx.DB
}

// NewFriendshipRepo constructs FriendshipRepo.
func NewFriendshipRepo(db *sqlx.DB) *FriendshipRepo {
	return &FriendshipRepo{db: db}
}

const sideColumns = `owner_id, friend_id, history, version, updated_at`

// Get retrieves one side of a friendship.
func (r *FriendshipRepo) Get(ctx context.Context, ownerID, friendID string) (models.FriendshipSide, error) {
	var side models.FriendshipSide
	err := r.db.GetContext(ctx, &side,
		`SELECT `+sideColumns+` FROM friendship_sides WHERE owner_id=$1 AND friend_id=$2`,
		ownerID, friendID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendshipSide{}, ErrSideNotFound
	}
	return side, err
}

// Mutate loads one side, applies fn to its history and writes the result
// back, creating the row on first contact. Writes are guarded by the
// version column; a concurrent writer forces a reload and reapply.
func (r *FriendshipRepo) Mutate(ctx context.Context, ownerID, friendID string, fn func(*models.MessagingHistory) error) (models.FriendshipSide, error) {
	for attempt := 0; attempt < mutateAttempts; attempt++ {
		side, err := r.Get(ctx, ownerID, friendID)
		fresh := errors.Is(err, ErrSideNotFound)
		if err != nil && !fresh {
			return models.FriendshipSide{}, err
		}
		if fresh {
			side = models.FriendshipSide{OwnerID: ownerID, FriendID: friendID}
		}

		if err := fn(&side.History); err != nil {
			return models.FriendshipSide{}, err
		}

		if fresh {
			inserted, err := r.insert(ctx, &side)
			if err != nil {
				return models.FriendshipSide{}, err
			}
			if inserted {
				return side, nil
			}
			continue // raced with another first write
		}

		updated, err := r.update(ctx, &side)
		if err != nil {
			return models.FriendshipSide{}, err
		}
		if updated {
			return side, nil
		}
	}
	return models.FriendshipSide{}, ErrVersionConflict
}

func (r *FriendshipRepo) insert(ctx context.Context, side *models.FriendshipSide) (bool, error) {
	active, days, lastAt := promoted(&side.History)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO friendship_sides (owner_id, friend_id, history, streak_active, streak_days, last_message_at, version, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, 1, NOW())
         ON CONFLICT (owner_id, friend_id) DO NOTHING`,
		side.OwnerID, side.FriendID, side.History, active, days, lastAt)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	side.Version = 1
	side.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *FriendshipRepo) update(ctx context.Context, side *models.FriendshipSide) (bool, error) {
	active, days, lastAt := promoted(&side.History)
	res, err := r.db.ExecContext(ctx,
		`UPDATE friendship_sides
         SET history=$3, streak_active=$4, streak_days=$5, last_message_at=$6, version=version+1, updated_at=NOW()
         WHERE owner_id=$1 AND friend_id=$2 AND version=$7`,
		side.OwnerID, side.FriendID, side.History, active, days, lastAt, side.Version)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	side.Version++
	side.UpdatedAt = time.Now().UTC()
	return true, nil
}

// promoted derives the indexed query columns kept alongside the history
// document so list endpoints never deserialize JSONB.
func promoted(h *models.MessagingHistory) (bool, int, *time.Time) {
	return h.Streak.IsActive, h.Streak.StreakDays, h.Stats.LastConversationAt
}

// ListActive returns the owner's friendship sides with activity since
// the given time, most recent first.
func (r *FriendshipRepo) ListActive(ctx context.Context, ownerID string, since time.Time) ([]models.FriendshipSide, error) {
	var sides []models.FriendshipSide
	err := r.db.SelectContext(ctx, &sides,
		`SELECT `+sideColumns+` FROM friendship_sides
         WHERE owner_id=$1 AND last_message_at IS NOT NULL AND last_message_at >= $2
         ORDER BY last_message_at DESC`,
		ownerID, since)
	return sides, err
}

// ListStreaks returns the owner's friendship sides with a live streak,
// longest first.
func (r *FriendshipRepo) ListStreaks(ctx context.Context, ownerID string) ([]models.FriendshipSide, error) {
	var sides []models.FriendshipSide
	err := r.db.SelectContext(ctx, &sides,
		`SELECT `+sideColumns+` FROM friendship_sides
         WHERE owner_id=$1 AND streak_active = TRUE AND streak_days > 0
         ORDER BY streak_days DESC`,
		ownerID)
	return sides, err
}
