package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
)

func TestEnqueueRejectsUnknownBand(t *testing.T) {
	repo := newFakeRepo()
	repo.addAvatar(1, "student-1", game.ArchetypeAI)
	eng := newTestEngine(repo)

	if _, err := eng.Enqueue(context.Background(), "student-1", "X9"); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("expected ErrInvalidBand, got %v", err)
	}
}

func TestEnqueueRequiresAvatar(t *testing.T) {
	eng := newTestEngine(newFakeRepo())

	if _, err := eng.Enqueue(context.Background(), "ghost", "K2"); !errors.Is(err, ErrNoAvatar) {
		t.Fatalf("expected ErrNoAvatar, got %v", err)
	}
}

func TestEnqueueCreatesPendingAndIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addAvatar(1, "student-1", game.ArchetypeAI)
	eng := newTestEngine(repo)

	// empty band falls back to the first configured one
	first, err := eng.Enqueue(context.Background(), "student-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != EnqueueStatusPending {
		t.Fatalf("expected PENDING, got %s", first.Status)
	}
	if m := repo.matches[first.MatchID]; m == nil || m.Band != "K2" {
		t.Fatalf("pending match missing or in wrong band: %+v", m)
	}

	// queueing again must return the same match, not create a second one
	again, err := eng.Enqueue(context.Background(), "student-1", "K2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.MatchID != first.MatchID || again.Status != EnqueueStatusPending {
		t.Fatalf("repeat enqueue must be idempotent, got %+v vs %+v", again, first)
	}
	if len(repo.matches) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(repo.matches))
	}
}

func TestEnqueuePairsWaitingOpponent(t *testing.T) {
	repo := newFakeRepo()
	repo.addAvatar(1, "student-1", game.ArchetypeAI)
	repo.addAvatar(2, "student-2", game.ArchetypeQuantum)
	eng := newTestEngine(repo)

	pending, err := eng.Enqueue(context.Background(), "student-1", "K2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined, err := eng.Enqueue(context.Background(), "student-2", "K2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if joined.Status != EnqueueStatusMatched || joined.MatchID != pending.MatchID {
		t.Fatalf("expected MATCHED into match %d, got %+v", pending.MatchID, joined)
	}

	m := repo.matches[pending.MatchID]
	if m.Status != game.MatchActive || m.Player2ID == nil || *m.Player2ID != 2 {
		t.Fatalf("join must activate the match with player2 set, got %+v", m)
	}
}

func TestEnqueueIgnoresPendingMatchInOtherBand(t *testing.T) {
	repo := newFakeRepo()
	repo.addAvatar(1, "student-1", game.ArchetypeAI)
	repo.addAvatar(2, "student-2", game.ArchetypeBiotech)
	eng := newTestEngine(repo)

	if _, err := eng.Enqueue(context.Background(), "student-1", "K2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := eng.Enqueue(context.Background(), "student-2", "G35")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != EnqueueStatusPending {
		t.Fatalf("cross-band pairing is not allowed, got %+v", res)
	}
	if len(repo.matches) != 2 {
		t.Fatalf("expected two pending matches, got %d", len(repo.matches))
	}
}

func TestEnqueueLostJoinRaceFallsBackToNewPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addAvatar(1, "student-1", game.ArchetypeAI)
	repo.addAvatar(2, "student-2", game.ArchetypeQuantum)
	eng := newTestEngine(repo)

	pending, err := eng.Enqueue(context.Background(), "student-1", "K2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// both join attempts lose to a phantom concurrent writer
	repo.joinRefusals = 2
	res, err := eng.Enqueue(context.Background(), "student-2", "K2")
	if err != nil {
		t.Fatalf("lost race must not surface an error: %v", err)
	}
	if res.Status != EnqueueStatusPending || res.MatchID == pending.MatchID {
		t.Fatalf("loser must end up owning a fresh pending match, got %+v", res)
	}

	// a single lost attempt recovers by retrying the join
	repo2 := newFakeRepo()
	repo2.addAvatar(1, "student-1", game.ArchetypeAI)
	repo2.addAvatar(2, "student-2", game.ArchetypeQuantum)
	eng2 := newTestEngine(repo2)
	if _, err := eng2.Enqueue(context.Background(), "student-1", "K2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo2.joinRefusals = 1
	res2, err := eng2.Enqueue(context.Background(), "student-2", "K2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res2.Status != EnqueueStatusMatched {
		t.Fatalf("retry after one lost race must join, got %+v", res2)
	}
}
