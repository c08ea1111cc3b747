package service

import (
	"sync"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"
)

// fakeRepo is an in-memory MatchRepo used across the service tests. The
// knobs joinRefusals and appendConflicts simulate lost races against a
// concurrent writer.
type fakeRepo struct {
	mu sync.Mutex

	avatars   map[uint]*game.Avatar
	abilities map[uint]*game.Ability
	matches   map[uint]*game.Match
	turns     map[uint][]game.Turn

	nextMatchID uint

	joinRefusals    int
	appendConflicts int
	statsCalls      int
	statsErr        error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		avatars:   make(map[uint]*game.Avatar),
		abilities: make(map[uint]*game.Ability),
		matches:   make(map[uint]*game.Match),
		turns:     make(map[uint][]game.Turn),
	}
}

func (f *fakeRepo) addAvatar(id uint, studentID string, arch game.Archetype, abilities ...*game.Ability) *game.Avatar {
	a := &game.Avatar{StudentID: studentID, Archetype: arch, Level: 1, BaseHP: 100}
	a.ID = id
	for _, ab := range abilities {
		a.UnlockedAbilities = append(a.UnlockedAbilities, *ab)
	}
	f.avatars[id] = a
	return a
}

func (f *fakeRepo) addAbility(id uint, arch game.Archetype, kind game.EffectKind, value int) *game.Ability {
	ab := &game.Ability{Archetype: arch, Effect: game.AbilityEffect{Kind: kind, Value: value}}
	ab.ID = id
	f.abilities[id] = ab
	return ab
}

func (f *fakeRepo) addActiveMatch(id, p1, p2 uint) *game.Match {
	p2ID := p2
	m := &game.Match{Player1ID: p1, Player2ID: &p2ID, Band: "K2", Status: game.MatchActive}
	m.ID = id
	m.UpdatedAt = time.Now()
	f.matches[id] = m
	return m
}

func (f *fakeRepo) GetAvatarByStudentID(studentID string) (*game.Avatar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.avatars {
		if a.StudentID == studentID {
			return a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) GetAvatarByID(id uint) (*game.Avatar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.avatars[id]; ok {
		return a, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) GetAbilityByID(id uint) (*game.Ability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ab, ok := f.abilities[id]; ok {
		return ab, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) CreateMatch(m *game.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMatchID++
	m.ID = f.nextMatchID
	m.UpdatedAt = time.Now()
	f.matches[m.ID] = m
	return nil
}

func (f *fakeRepo) GetMatchByID(id uint) (*game.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.matches[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) UpdateMatch(m *game.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.UpdatedAt = time.Now()
	copied := *m
	f.matches[m.ID] = &copied
	return nil
}

func (f *fakeRepo) FindPendingMatchByOwner(player1ID uint) (*game.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.Player1ID == player1ID && m.Status == game.MatchPending {
			copied := *m
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) FindOpenMatch(band string, excludePlayerID uint) (*game.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.Status == game.MatchPending && m.Band == band && m.Player1ID != excludePlayerID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) JoinPendingMatch(matchID, player2ID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.joinRefusals > 0 {
		f.joinRefusals--
		return false, nil
	}
	m, ok := f.matches[matchID]
	if !ok || m.Status != game.MatchPending || m.Player2ID != nil {
		return false, nil
	}
	p2 := player2ID
	m.Player2ID = &p2
	m.Status = game.MatchActive
	m.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRepo) FindStalledActiveMatches(cutoff time.Time) ([]game.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []game.Match
	for _, m := range f.matches {
		if m.Status == game.MatchActive && !m.UpdatedAt.After(cutoff) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppendTurn(t *game.Turn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendConflicts > 0 {
		f.appendConflicts--
		return storage.ErrDuplicateRound
	}
	for _, existing := range f.turns[t.MatchID] {
		if existing.Round == t.Round {
			return storage.ErrDuplicateRound
		}
	}
	t.CreatedAt = time.Now()
	f.turns[t.MatchID] = append(f.turns[t.MatchID], *t)
	return nil
}

func (f *fakeRepo) GetTurnsByMatchID(matchID uint) ([]game.Turn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]game.Turn, len(f.turns[matchID]))
	copy(out, f.turns[matchID])
	return out, nil
}

func (f *fakeRepo) UpdateStatsOnMatchEnd(m *game.Match, p1, p2 *game.Avatar) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statsErr != nil {
		return f.statsErr
	}
	f.statsCalls++
	return nil
}

// setUpdatedAt backdates a match for timeout tests.
func (f *fakeRepo) setUpdatedAt(matchID uint, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[matchID].UpdatedAt = at
}

// setTurnCreatedAt backdates a recorded turn for timeout tests.
func (f *fakeRepo) setTurnCreatedAt(matchID uint, idx int, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns[matchID][idx].CreatedAt = at
}
