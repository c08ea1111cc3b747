package service

import (
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"

	"golang.org/x/sync/singleflight"
)

// MatchRepo is the minimal repository interface required by the engine
// services. internal/storage.Repository satisfies it.
type MatchRepo interface {
	GetAvatarByStudentID(studentID string) (*game.Avatar, error)
	GetAvatarByID(id uint) (*game.Avatar, error)
	GetAbilityByID(id uint) (*game.Ability, error)
	CreateMatch(m *game.Match) error
	GetMatchByID(id uint) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	FindPendingMatchByOwner(player1ID uint) (*game.Match, error)
	FindOpenMatch(band string, excludePlayerID uint) (*game.Match, error)
	JoinPendingMatch(matchID, player2ID uint) (bool, error)
	FindStalledActiveMatches(cutoff time.Time) ([]game.Match, error)
	AppendTurn(t *game.Turn) error
	GetTurnsByMatchID(matchID uint) ([]game.Turn, error)
	UpdateStatsOnMatchEnd(m *game.Match, p1, p2 *game.Avatar) error
}

// Engine wires the matchmaker, combat resolver and timeout arbiter over a
// shared repository. Per-match state is the unit of consistency: every
// read-then-write sequence runs under that match's lock.
type Engine struct {
	repo        MatchRepo
	bands       []string
	maxTurns    int
	turnTimeout time.Duration

	locks *matchLocks
	// enqueueGroup collapses concurrent queue requests from the same
	// student into a single execution.
	enqueueGroup singleflight.Group

	// now is swappable in tests.
	now func() time.Time
}

func NewEngine(repo MatchRepo, bands []string, maxTurns int, turnTimeout time.Duration) *Engine {
	return &Engine{
		repo:        repo,
		bands:       bands,
		maxTurns:    maxTurns,
		turnTimeout: turnTimeout,
		locks:       newMatchLocks(),
		now:         time.Now,
	}
}

func (e *Engine) validBand(band string) bool {
	for _, b := range e.bands {
		if b == band {
			return true
		}
	}
	return false
}
