package engine

import "github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"

// BattleState is the derived view of a match: a pure function of the
// players' HP baselines and the ordered turn log. It is never persisted;
// re-folding the same log always yields the same state.
type BattleState struct {
	P1HP      int
	P2HP      int
	TurnCount int
	Over      bool
	// WinnerID is nil while the match runs and on a draw.
	WinnerID *uint
}

// ExpectedActor derives whose turn it is from the count of prior turns:
// an even count means player1 acts, an odd count means player2.
func ExpectedActor(m *game.Match, turnCount int) uint {
	if turnCount%2 == 0 {
		return m.Player1ID
	}
	return *m.Player2ID
}

// Fold replays the ordered turn log against both baselines and decides
// whether the match is over. HP values are NOT floored here: negative
// values are meaningful for the win check and only clamped for display.
//
// Per turn: the opponent of the actor accumulates damageDealt; the actor
// reduces their own net damage by healAmount.
func Fold(m *game.Match, p1, p2 *game.Avatar, turns []game.Turn, maxTurns int) BattleState {
	p1Net := 0
	p2Net := 0
	for i := range turns {
		t := &turns[i]
		if t.ActorID == m.Player1ID {
			p2Net += t.DamageDealt
			p1Net -= t.HealAmount
		} else {
			p1Net += t.DamageDealt
			p2Net -= t.HealAmount
		}
	}

	st := BattleState{
		P1HP:      p1.BaseHP - p1Net,
		P2HP:      p2.BaseHP - p2Net,
		TurnCount: len(turns),
	}

	if st.P1HP <= 0 || st.P2HP <= 0 || st.TurnCount >= maxTurns {
		st.Over = true
		switch {
		case st.P1HP > st.P2HP:
			id := m.Player1ID
			st.WinnerID = &id
		case st.P2HP > st.P1HP:
			id := *m.Player2ID
			st.WinnerID = &id
		}
	}
	return st
}

// ClampHP floors a derived HP value at zero for display purposes.
func ClampHP(hp int) int {
	if hp < 0 {
		return 0
	}
	return hp
}
