package service

import (
	"errors"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/engine"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"
)

// ErrMatchNotFound is the read-projection miss; unlike ErrInvalidMatch it
// does not imply anything about the match's lifecycle state.
var ErrMatchNotFound = errors.New("match not found")

// MatchState is the read-only projection served to participants: the
// registry row, the full turn history and the derived battle view.
type MatchState struct {
	Match *game.Match `json:"match"`
	Turns []game.Turn `json:"turns"`
	// Computed is nil while the match is still PENDING (no opponent, so
	// there is no battle state to derive).
	Computed *ComputedState `json:"computed,omitempty"`
}

// ComputedState is the fold result with display-clamped HP.
type ComputedState struct {
	P1HP      int   `json:"p1_hp"`
	P2HP      int   `json:"p2_hp"`
	TurnCount int   `json:"turn_count"`
	MatchOver bool  `json:"match_over"`
	WinnerID  *uint `json:"winner_id,omitempty"`
	NextActor *uint `json:"next_actor,omitempty"`
}

// GetMatchState returns the projection for viewerID, who must be a
// participant. Turn log reads need no lock: the log is append-only.
func (e *Engine) GetMatchState(matchID, viewerID uint) (*MatchState, error) {
	m, err := e.repo.GetMatchByID(matchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if !m.IsParticipant(viewerID) {
		return nil, ErrNotParticipant
	}

	turns, err := e.repo.GetTurnsByMatchID(m.ID)
	if err != nil {
		return nil, err
	}

	state := &MatchState{Match: m, Turns: turns}
	if m.Player2ID != nil {
		p1, err := e.repo.GetAvatarByID(m.Player1ID)
		if err != nil {
			return nil, err
		}
		p2, err := e.repo.GetAvatarByID(*m.Player2ID)
		if err != nil {
			return nil, err
		}
		folded := engine.Fold(m, p1, p2, turns, e.maxTurns)
		computed := &ComputedState{
			P1HP:      engine.ClampHP(folded.P1HP),
			P2HP:      engine.ClampHP(folded.P2HP),
			TurnCount: folded.TurnCount,
			MatchOver: folded.Over || m.Status.Terminal(),
			WinnerID:  folded.WinnerID,
		}
		if m.Status == game.MatchForfeit {
			computed.WinnerID = m.WinnerID
		}
		if m.Status == game.MatchActive && !folded.Over {
			next := engine.ExpectedActor(m, len(turns))
			computed.NextActor = &next
		}
		state.Computed = computed
	}
	return state, nil
}
