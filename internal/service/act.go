package service

import (
	"context"
	"errors"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/engine"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/logging"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"

	"github.com/cenkalti/backoff/v5"
)

// ActResult reports the outcome of one resolved turn. HP values are
// clamped at zero for display; the win check inside uses the raw fold.
type ActResult struct {
	MatchOver bool  `json:"match_over"`
	WinnerID  *uint `json:"winner_id,omitempty"`
	P1HP      int   `json:"p1_hp"`
	P2HP      int   `json:"p2_hp"`
	Round     int   `json:"round"`
}

// Act validates and resolves a single combat action: it appends exactly
// one turn to the log, re-folds the full history and, when the match is
// decided, writes the terminal status back to the registry.
func (e *Engine) Act(ctx context.Context, matchID, actorID, abilityID uint) (*ActResult, error) {
	unlock := e.locks.acquire(matchID)
	defer unlock()

	// A cross-process writer can still win the round append despite the
	// local lock; the unique (match_id, round) index catches that and we
	// re-run the whole resolution once.
	resolve := func() (*ActResult, error) {
		res, err := e.resolveTurn(matchID, actorID, abilityID)
		if err != nil && !errors.Is(err, ErrConcurrencyConflict) {
			return nil, backoff.Permanent(err)
		}
		return res, err
	}
	res, err := backoff.Retry(ctx, resolve,
		backoff.WithBackOff(backoff.NewConstantBackOff(10*time.Millisecond)),
		backoff.WithMaxTries(2))
	if err == nil && res.MatchOver {
		e.locks.evict(matchID)
	}
	return res, err
}

func (e *Engine) resolveTurn(matchID, actorID, abilityID uint) (*ActResult, error) {
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
	if !m.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}

	turns, err := e.repo.GetTurnsByMatchID(m.ID)
	if err != nil {
		return nil, err
	}
	if engine.ExpectedActor(m, len(turns)) != actorID {
		return nil, ErrNotYourTurn
	}

	p1, err := e.repo.GetAvatarByID(m.Player1ID)
	if err != nil {
		return nil, err
	}
	p2, err := e.repo.GetAvatarByID(*m.Player2ID)
	if err != nil {
		return nil, err
	}
	actor, opponent := p1, p2
	if actorID == p2.ID {
		actor, opponent = p2, p1
	}

	if !actor.HasUnlocked(abilityID) {
		return nil, ErrAbilityNotUnlocked
	}
	ability, err := e.repo.GetAbilityByID(abilityID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAbilityNotFound
		}
		return nil, err
	}

	damage, heal := engine.ResolveEffect(ability.Effect, actor.Archetype, opponent.Archetype)

	turn := &game.Turn{
		MatchID:     m.ID,
		Round:       len(turns) + 1,
		ActorID:     actorID,
		AbilityID:   abilityID,
		DamageDealt: damage,
		HealAmount:  heal,
	}
	if err := e.repo.AppendTurn(turn); err != nil {
		if errors.Is(err, storage.ErrDuplicateRound) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	// Re-fold the full history, new turn included. HP stays a pure
	// function of the log: a replay can always re-derive it.
	state := engine.Fold(m, p1, p2, append(turns, *turn), e.maxTurns)

	if state.Over {
		m.Status = game.MatchCompleted
		m.WinnerID = state.WinnerID
		if !m.StatsCounted {
			if err := e.repo.UpdateStatsOnMatchEnd(m, p1, p2); err != nil {
				logging.Error("failed to update stats on match end", err, logging.Fields{constants.LogFieldMatchID: m.ID})
			} else {
				m.StatsCounted = true
			}
		}
		logging.Info("match completed", logging.Fields{
			constants.LogFieldMatchID:  m.ID,
			constants.LogFieldRound:    turn.Round,
			constants.LogFieldWinnerID: state.WinnerID,
		})
	}
	// Saving on every accepted turn also refreshes updated_at, the
	// timeout arbiter's fallback reference point.
	if err := e.repo.UpdateMatch(m); err != nil {
		return nil, err
	}

	return &ActResult{
		MatchOver: state.Over,
		WinnerID:  state.WinnerID,
		P1HP:      engine.ClampHP(state.P1HP),
		P2HP:      engine.ClampHP(state.P2HP),
		Round:     turn.Round,
	}, nil
}
