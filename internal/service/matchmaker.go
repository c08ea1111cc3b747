package service

import (
	"context"
	"errors"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/logging"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// EnqueueResult reports the match a student ended up in. Status is
// "PENDING" when the student now owns an open match waiting for an
// opponent, "MATCHED" when they joined one.
type EnqueueResult struct {
	MatchID   uint   `json:"match_id"`
	MatchUUID string `json:"match_uuid"`
	Status    string `json:"status"`
}

const (
	EnqueueStatusPending = "PENDING"
	EnqueueStatusMatched = "MATCHED"
)

// Enqueue pairs the student into an open match in the band, or creates a
// new PENDING match owned by them. A student holds at most one PENDING
// match at a time: repeat calls return the existing one unchanged.
func (e *Engine) Enqueue(ctx context.Context, studentID, band string) (*EnqueueResult, error) {
	if band == "" {
		band = e.bands[0]
	} else if !e.validBand(band) {
		return nil, ErrInvalidBand
	}

	// Concurrent queue requests from one student collapse into a single
	// execution so the single-pending invariant holds even under retry
	// storms from the client.
	v, err, _ := e.enqueueGroup.Do(studentID, func() (interface{}, error) {
		return e.enqueueOnce(ctx, studentID, band)
	})
	if err != nil {
		return nil, err
	}
	return v.(*EnqueueResult), nil
}

func (e *Engine) enqueueOnce(ctx context.Context, studentID, band string) (*EnqueueResult, error) {
	avatar, err := e.repo.GetAvatarByStudentID(studentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoAvatar
		}
		return nil, err
	}

	// Idempotent retry: an existing PENDING match owned by the caller is
	// returned as-is, never duplicated.
	if pending, err := e.repo.FindPendingMatchByOwner(avatar.ID); err == nil {
		return &EnqueueResult{MatchID: pending.ID, MatchUUID: pending.MatchUUID, Status: EnqueueStatusPending}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// Find-then-join is a check-then-act race: two joiners can pick the
	// same PENDING match. The conditional update lets exactly one win;
	// the loser retries once and falls back to creating a fresh match.
	attempt := func() (*EnqueueResult, error) {
		open, err := e.repo.FindOpenMatch(band, avatar.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return e.createPending(avatar.ID, band)
			}
			return nil, backoff.Permanent(err)
		}
		joined, err := e.repo.JoinPendingMatch(open.ID, avatar.ID)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if !joined {
			logging.Info("matchmaker join race lost, retrying", logging.Fields{
				constants.LogFieldMatchID:  open.ID,
				constants.LogFieldAvatarID: avatar.ID,
			})
			return nil, ErrConcurrencyConflict
		}
		return &EnqueueResult{MatchID: open.ID, MatchUUID: open.MatchUUID, Status: EnqueueStatusMatched}, nil
	}

	res, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(backoff.NewConstantBackOff(10*time.Millisecond)),
		backoff.WithMaxTries(2))
	if err != nil {
		// Both attempts lost the join race; fall back to owning a new
		// PENDING match rather than surfacing the conflict.
		if errors.Is(err, ErrConcurrencyConflict) {
			return e.createPending(avatar.ID, band)
		}
		return nil, err
	}
	return res, nil
}

func (e *Engine) createPending(player1ID uint, band string) (*EnqueueResult, error) {
	m := &game.Match{
		MatchUUID: uuid.NewString(),
		Player1ID: player1ID,
		Band:      band,
		Status:    game.MatchPending,
	}
	if err := e.repo.CreateMatch(m); err != nil {
		return nil, err
	}
	logging.Info("pending match created", logging.Fields{
		constants.LogFieldMatchID:  m.ID,
		constants.LogFieldAvatarID: player1ID,
		constants.LogFieldBand:     band,
	})
	return &EnqueueResult{MatchID: m.ID, MatchUUID: m.MatchUUID, Status: EnqueueStatusPending}, nil
}
