package storage

import (
	"errors"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
)

// ErrDuplicateRound is returned by AppendTurn when another writer already
// recorded a turn with the same (matchID, round). Callers treat it as a
// lost race and retry the whole resolution.
var ErrDuplicateRound = errors.New("turn already recorded for this round")

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// Avatar Directory (read mostly)
	GetAvatarByStudentID(studentID string) (*game.Avatar, error)
	GetAvatarByID(id uint) (*game.Avatar, error)
	// CreateAvatar also unlocks the archetype's req-level-1 abilities.
	// Used by fixtures and ops tooling, not by the engine itself.
	CreateAvatar(a *game.Avatar) error

	// Ability Catalog (read only)
	GetAbilities() ([]game.Ability, error)
	GetAbilityByID(id uint) (*game.Ability, error)

	// Match Registry
	CreateMatch(m *game.Match) error
	GetMatchByID(id uint) (*game.Match, error)
	GetMatchByUUID(uuid string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	// FindPendingMatchByOwner returns the caller's open PENDING match, if any.
	FindPendingMatchByOwner(player1ID uint) (*game.Match, error)
	// FindOpenMatch returns a PENDING match in the band not owned by the caller.
	FindOpenMatch(band string, excludePlayerID uint) (*game.Match, error)
	// JoinPendingMatch conditionally assigns player2 and activates the
	// match. Returns false when the race was lost (match no longer
	// PENDING or already joined).
	JoinPendingMatch(matchID, player2ID uint) (bool, error)
	// FindStalledActiveMatches lists ACTIVE matches with no state change
	// since the cutoff, for the background sweeper.
	FindStalledActiveMatches(cutoff time.Time) ([]game.Match, error)

	// Turn Log Store (append only)
	AppendTurn(t *game.Turn) error
	GetTurnsByMatchID(matchID uint) ([]game.Turn, error)

	// Aggregate stats
	UpdateStatsOnMatchEnd(m *game.Match, p1, p2 *game.Avatar) error
	GetTopStudents(limit int) ([]game.StudentStats, error)
}
