package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
)

func testCatalog() []game.Ability {
	return []game.Ability{
		{Name: "Laser Strike", Archetype: game.ArchetypeAI, ReqLevel: 1, Effect: game.AbilityEffect{Kind: game.EffectAttack, Value: 15}},
		{Name: "Overclock", Archetype: game.ArchetypeAI, ReqLevel: 2, Effect: game.AbilityEffect{Kind: game.EffectHeal, Value: 10}},
		{Name: "Nano Heal", Archetype: game.ArchetypeBiotech, ReqLevel: 1, Effect: game.AbilityEffect{Kind: game.EffectHeal, Value: 15}},
	}
}

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	abilities := testCatalog()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "arena.db"), "", abilities)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return NewGormRepository(db, abilities, 100)
}

func TestCreateAvatarAppliesBaseHPDefault(t *testing.T) {
	repo := newTestRepo(t)

	a := &game.Avatar{StudentID: "student-1", Archetype: game.ArchetypeAI}
	if err := repo.CreateAvatar(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetAvatarByID(a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BaseHP != 100 {
		t.Fatalf("expected configured base HP 100, got %d", got.BaseHP)
	}
	if got.Level != 1 {
		t.Fatalf("expected level to default to 1, got %d", got.Level)
	}

	// only the archetype's req-level-1 abilities unlock at creation
	if len(got.UnlockedAbilities) != 1 || got.UnlockedAbilities[0].Name != "Laser Strike" {
		t.Fatalf("expected only Laser Strike unlocked, got %+v", got.UnlockedAbilities)
	}
	if got.UnlockedAbilities[0].Effect.Value != 15 {
		t.Fatalf("effect values must come from config, got %+v", got.UnlockedAbilities[0].Effect)
	}
}

func TestCreateAvatarKeepsExplicitBaseHP(t *testing.T) {
	repo := newTestRepo(t)

	a := &game.Avatar{StudentID: "student-2", Archetype: game.ArchetypeBiotech, Level: 2, BaseHP: 120}
	if err := repo.CreateAvatar(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetAvatarByStudentID("student-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BaseHP != 120 {
		t.Fatalf("explicit base HP must be preserved, got %d", got.BaseHP)
	}
}

func TestAppendTurnRejectsDuplicateRound(t *testing.T) {
	repo := newTestRepo(t)

	p2 := uint(2)
	m := &game.Match{MatchUUID: "3e5f0f6e-0000-4000-8000-000000000001", Player1ID: 1, Player2ID: &p2, Band: "K2", Status: game.MatchActive}
	if err := repo.CreateMatch(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := &game.Turn{MatchID: m.ID, Round: 1, ActorID: 1, AbilityID: 1, DamageDealt: 15}
	if err := repo.AppendTurn(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup := &game.Turn{MatchID: m.ID, Round: 1, ActorID: 2, AbilityID: 3, HealAmount: 15}
	if err := repo.AppendTurn(dup); !errors.Is(err, ErrDuplicateRound) {
		t.Fatalf("expected ErrDuplicateRound, got %v", err)
	}
}
