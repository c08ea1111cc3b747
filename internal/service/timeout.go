package service

import (
	"errors"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/engine"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/logging"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"
)

// ClaimResult reports a forfeit awarded by the timeout arbiter.
type ClaimResult struct {
	MatchOver bool             `json:"match_over"`
	WinnerID  uint             `json:"winner_id"`
	Status    game.MatchStatus `json:"status"`
}

// ClaimTimeout lets the non-acting player force-end a stalled ACTIVE
// match once the acting player has held the turn past the deadline. The
// reference point is the last turn's timestamp, or the match's updatedAt
// when no turn exists yet. No turn is appended; FORFEIT is terminal.
func (e *Engine) ClaimTimeout(matchID, claimantID uint) (*ClaimResult, error) {
	unlock := e.locks.acquire(matchID)
	defer unlock()

	m, err := e.repo.GetMatchByID(matchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidMatch
		}
		return nil, err
	}
	if m.Status != game.MatchActive {
		return nil, ErrInvalidMatch
	}
	if !m.IsParticipant(claimantID) {
		return nil, ErrNotParticipant
	}

	turns, err := e.repo.GetTurnsByMatchID(m.ID)
	if err != nil {
		return nil, err
	}
	if engine.ExpectedActor(m, len(turns)) == claimantID {
		return nil, ErrCannotClaimOwnTurn
	}

	reference := m.UpdatedAt
	if len(turns) > 0 {
		reference = turns[len(turns)-1].CreatedAt
	}
	if e.now().Sub(reference) < e.turnTimeout {
		return nil, ErrTimeoutNotYetClaimable
	}

	m.Status = game.MatchForfeit
	winnerID := claimantID
	m.WinnerID = &winnerID
	if !m.StatsCounted {
		// Left false on failure so a later terminal write can still
		// count this match.
		if err := e.countForfeitStats(m); err != nil {
			logging.Error("failed to update stats on forfeit", err, logging.Fields{constants.LogFieldMatchID: m.ID})
		} else {
			m.StatsCounted = true
		}
	}
	if err := e.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	e.locks.evict(m.ID)

	logging.Info("match forfeited on timeout", logging.Fields{
		constants.LogFieldMatchID:  m.ID,
		constants.LogFieldWinnerID: winnerID,
	})
	return &ClaimResult{MatchOver: true, WinnerID: winnerID, Status: game.MatchForfeit}, nil
}

func (e *Engine) countForfeitStats(m *game.Match) error {
	p1, err := e.repo.GetAvatarByID(m.Player1ID)
	if err != nil {
		return err
	}
	p2, err := e.repo.GetAvatarByID(*m.Player2ID)
	if err != nil {
		return err
	}
	return e.repo.UpdateStatsOnMatchEnd(m, p1, p2)
}

// ExpireStalled finishes ACTIVE matches with no activity since the
// cutoff as draws. Neither player wins and stats are not counted; the
// claimant-driven forfeit above remains the only way to win by timeout.
func (e *Engine) ExpireStalled(stalledAfter time.Duration) error {
	cutoff := e.now().Add(-stalledAfter)
	matches, err := e.repo.FindStalledActiveMatches(cutoff)
	if err != nil {
		return err
	}
	for i := range matches {
		e.expireOne(matches[i].ID)
	}
	return nil
}

func (e *Engine) expireOne(matchID uint) {
	unlock := e.locks.acquire(matchID)
	defer unlock()

	m, err := e.repo.GetMatchByID(matchID)
	if err != nil || m.Status != game.MatchActive {
		return
	}
	m.Status = game.MatchCompleted
	m.WinnerID = nil
	m.StatsCounted = true
	if err := e.repo.UpdateMatch(m); err != nil {
		logging.Error("failed to expire stalled match", err, logging.Fields{constants.LogFieldMatchID: m.ID})
		return
	}
	e.locks.evict(m.ID)
	logging.Warn("stalled match expired as draw", logging.Fields{constants.LogFieldMatchID: m.ID})
}
