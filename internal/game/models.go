package game

import (
	"time"

	"gorm.io/gorm"
)

// Archetype is one of the three combat factions. The matchup cycle is
// defined in advantage.go.
type Archetype string

const (
	ArchetypeAI      Archetype = "AI"
	ArchetypeQuantum Archetype = "QUANTUM"
	ArchetypeBiotech Archetype = "BIOTECH"
)

// ValidArchetype reports whether s names one of the known archetypes.
func ValidArchetype(s string) bool {
	switch Archetype(s) {
	case ArchetypeAI, ArchetypeQuantum, ArchetypeBiotech:
		return true
	}
	return false
}

// EffectKind classifies what an ability does when it resolves.
type EffectKind string

const (
	EffectAttack EffectKind = "ATTACK"
	EffectHeal   EffectKind = "HEAL"
)

// AbilityEffect describes the combat effect of an ability. Effects are
// configured via the server config (arena_config.json) and are NOT
// persisted in the database. Mark them with `gorm:"-"` so GORM ignores
// them for schema purposes while keeping the fields available in-memory
// and in JSON responses.
type AbilityEffect struct {
	Kind  EffectKind `json:"kind" gorm:"-"`
	Value int        `json:"value" gorm:"-"`
}

// Ability is immutable reference data: one entry of the Ability Catalog.
// Rows are seeded from config at startup; effect values are always taken
// from config at read time (config is the source of truth for balance).
type Ability struct {
	gorm.Model
	Name      string        `json:"name" gorm:"uniqueIndex"`
	Archetype Archetype     `json:"archetype"`
	ReqLevel  int           `json:"req_level"`
	Effect    AbilityEffect `json:"effect" gorm:"-"`
}

// TableName overrides the default GORM table name so the persisted table
// is `ability_catalog` instead of the default `abilities`.
func (Ability) TableName() string { return "ability_catalog" }

// Avatar is a student's combat identity. The engine treats avatars as
// read-only during a match except for level/XP updates made by the
// progression service, which is outside this module.
type Avatar struct {
	gorm.Model
	StudentID string    `json:"student_id" gorm:"uniqueIndex"`
	Archetype Archetype `json:"archetype"`
	Level     int       `json:"level"`
	XP        int       `json:"xp"`
	BaseHP    int       `json:"base_hp"`
	// Use a descriptive join table name for the many-to-many relation.
	UnlockedAbilities []Ability `json:"unlocked_abilities" gorm:"many2many:avatar_unlocked_abilities;"`
}

// HasUnlocked reports whether the given ability ID is part of the
// avatar's unlocked set.
func (a *Avatar) HasUnlocked(abilityID uint) bool {
	for i := range a.UnlockedAbilities {
		if a.UnlockedAbilities[i].ID == abilityID {
			return true
		}
	}
	return false
}

// MatchStatus is the lifecycle state of a match. COMPLETED and FORFEIT
// are terminal: once set, the match row is never mutated again.
type MatchStatus string

const (
	MatchPending   MatchStatus = "PENDING"
	MatchActive    MatchStatus = "ACTIVE"
	MatchCompleted MatchStatus = "COMPLETED"
	MatchForfeit   MatchStatus = "FORFEIT"
)

// Terminal reports whether the status admits no further transitions.
func (s MatchStatus) Terminal() bool {
	return s == MatchCompleted || s == MatchForfeit
}

// Match pairs two avatars inside a band. Player2ID is nil until an
// opponent joins. Live HP is never stored here: it is always derived by
// folding the match's turn log (see internal/engine).
type Match struct {
	gorm.Model
	MatchUUID string      `json:"match_uuid" gorm:"uniqueIndex"`
	Player1ID uint        `json:"player1_id" gorm:"index"`
	Player2ID *uint       `json:"player2_id" gorm:"index"`
	Band      string      `json:"band" gorm:"index"`
	Status    MatchStatus `json:"status" gorm:"index"`
	WinnerID  *uint       `json:"winner_id"`
	// StatsCounted guards the one-shot stats update on match end.
	StatsCounted bool `json:"-"`
}

// IsParticipant reports whether avatarID plays in this match.
func (m *Match) IsParticipant(avatarID uint) bool {
	if m.Player1ID == avatarID {
		return true
	}
	return m.Player2ID != nil && *m.Player2ID == avatarID
}

// Turn is one atomic combat action, permanently recorded. Rounds are
// strictly increasing per match starting at 1; the unique index on
// (match_id, round) makes duplicate appends impossible at the DB level.
type Turn struct {
	ID          uint      `json:"-" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	MatchID     uint      `json:"match_id" gorm:"uniqueIndex:idx_match_turns_round"`
	Round       int       `json:"round" gorm:"uniqueIndex:idx_match_turns_round"`
	ActorID     uint      `json:"actor_id"`
	AbilityID   uint      `json:"ability_id"`
	DamageDealt int       `json:"damage_dealt"`
	HealAmount  int       `json:"heal_amount"`
}

// TableName stores turns in `match_turns`.
func (Turn) TableName() string { return "match_turns" }

// StudentStats stores aggregate results per student, updated once per
// finished match.
type StudentStats struct {
	gorm.Model
	StudentID       string `json:"student_id" gorm:"uniqueIndex"`
	MatchesPlayed   int    `json:"matches_played"`
	Wins            int    `json:"wins"`
	ForfeitsClaimed int    `json:"forfeits_claimed"`
}

// TableName unifies the stats table name as "student_stats".
func (StudentStats) TableName() string { return "student_stats" }
