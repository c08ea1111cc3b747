package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"

	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
	// effectByName maps lowercase ability name -> config definition
	// (effect kind/value, req level). Config is the source of truth.
	effectByName map[string]game.Ability
	// defaultBaseHP is applied to avatars created without an explicit
	// HP baseline.
	defaultBaseHP int
}

func NewGormRepository(db *gorm.DB, configAbilities []game.Ability, defaultBaseHP int) Repository {
	m := make(map[string]game.Ability, len(configAbilities))
	for _, a := range configAbilities {
		m[strings.ToLower(a.Name)] = a
	}
	return &gormRepository{db: db, effectByName: m, defaultBaseHP: defaultBaseHP}
}

// applyConfig overrides the non-persisted fields of an ability row from
// the loaded configuration.
func (r *gormRepository) applyConfig(a *game.Ability) {
	if conf, ok := r.effectByName[strings.ToLower(a.Name)]; ok {
		a.Effect = conf.Effect
		a.ReqLevel = conf.ReqLevel
	}
}

func (r *gormRepository) GetAbilities() ([]game.Ability, error) {
	var abilities []game.Ability
	if err := r.db.Find(&abilities).Error; err != nil {
		return nil, err
	}
	for i := range abilities {
		r.applyConfig(&abilities[i])
	}
	return abilities, nil
}

func (r *gormRepository) GetAbilityByID(id uint) (*game.Ability, error) {
	var a game.Ability
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.applyConfig(&a)
	return &a, nil
}

func (r *gormRepository) GetAvatarByStudentID(studentID string) (*game.Avatar, error) {
	var a game.Avatar
	err := r.db.Preload("UnlockedAbilities").Where("student_id = ?", studentID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	for i := range a.UnlockedAbilities {
		r.applyConfig(&a.UnlockedAbilities[i])
	}
	return &a, nil
}

func (r *gormRepository) GetAvatarByID(id uint) (*game.Avatar, error) {
	var a game.Avatar
	if err := r.db.Preload("UnlockedAbilities").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	for i := range a.UnlockedAbilities {
		r.applyConfig(&a.UnlockedAbilities[i])
	}
	return &a, nil
}

// CreateAvatar persists the avatar and unlocks every ability of its
// archetype at req level 1 (the default loadout). A zero HP baseline is
// replaced with the configured default so a fresh avatar never starts a
// fold at 0 HP.
func (r *gormRepository) CreateAvatar(a *game.Avatar) error {
	if a.BaseHP <= 0 {
		a.BaseHP = r.defaultBaseHP
	}
	if a.Level <= 0 {
		a.Level = 1
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		var defaults []game.Ability
		if err := tx.Where("archetype = ?", a.Archetype).Find(&defaults).Error; err != nil {
			return err
		}
		unlocked := make([]game.Ability, 0, len(defaults))
		for _, ab := range defaults {
			if conf, ok := r.effectByName[strings.ToLower(ab.Name)]; ok && conf.ReqLevel > a.Level {
				continue
			}
			unlocked = append(unlocked, ab)
		}
		if len(unlocked) == 0 {
			return nil
		}
		return tx.Model(a).Association("UnlockedAbilities").Append(&unlocked)
	})
}

func (r *gormRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *gormRepository) GetMatchByID(id uint) (*game.Match, error) {
	var m game.Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) GetMatchByUUID(uuid string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Where("match_uuid = ?", uuid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) UpdateMatch(m *game.Match) error {
	return r.db.Save(m).Error
}

func (r *gormRepository) FindPendingMatchByOwner(player1ID uint) (*game.Match, error) {
	var m game.Match
	err := r.db.Where("player1_id = ? AND status = ?", player1ID, game.MatchPending).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) FindOpenMatch(band string, excludePlayerID uint) (*game.Match, error) {
	var m game.Match
	err := r.db.
		Where("status = ? AND band = ? AND player1_id != ?", game.MatchPending, band, excludePlayerID).
		Order("created_at asc").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// JoinPendingMatch resolves the find-then-join race with a conditional
// update: only one joiner can flip the row from PENDING, and the
// affected-row count tells the loser it lost.
func (r *gormRepository) JoinPendingMatch(matchID, player2ID uint) (bool, error) {
	res := r.db.Model(&game.Match{}).
		Where("id = ? AND status = ? AND player2_id IS NULL", matchID, game.MatchPending).
		Updates(map[string]interface{}{
			"player2_id": player2ID,
			"status":     game.MatchActive,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gormRepository) FindStalledActiveMatches(cutoff time.Time) ([]game.Match, error) {
	var matches []game.Match
	err := r.db.
		Where("status = ? AND updated_at <= ?", game.MatchActive, cutoff).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *gormRepository) AppendTurn(t *game.Turn) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRound
		}
		return err
	}
	return nil
}

func (r *gormRepository) GetTurnsByMatchID(matchID uint) ([]game.Turn, error) {
	var turns []game.Turn
	if err := r.db.Where("match_id = ?", matchID).Order("round asc").Find(&turns).Error; err != nil {
		return nil, err
	}
	return turns, nil
}

// UpdateStatsOnMatchEnd records aggregate results for both participants.
// The caller guards against double-counting via Match.StatsCounted.
func (r *gormRepository) UpdateStatsOnMatchEnd(m *game.Match, p1, p2 *game.Avatar) error {
	upsert := func(studentID string, played, wins, forfeits int) error {
		var st game.StudentStats
		if err := r.db.Where("student_id = ?", studentID).First(&st).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				st = game.StudentStats{StudentID: studentID}
			} else {
				return err
			}
		}
		st.MatchesPlayed += played
		st.Wins += wins
		st.ForfeitsClaimed += forfeits
		return r.db.Save(&st).Error
	}
	if err := upsert(p1.StudentID, 1, 0, 0); err != nil {
		return err
	}
	if err := upsert(p2.StudentID, 1, 0, 0); err != nil {
		return err
	}
	if m.WinnerID == nil {
		return nil
	}
	winner := p1
	if p2.ID == *m.WinnerID {
		winner = p2
	}
	forfeits := 0
	if m.Status == game.MatchForfeit {
		forfeits = 1
	}
	return upsert(winner.StudentID, 0, 1, forfeits)
}

func (r *gormRepository) GetTopStudents(limit int) ([]game.StudentStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var stats []game.StudentStats
	if err := r.db.Model(&game.StudentStats{}).
		Order("wins DESC").
		Order("matches_played DESC").
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
