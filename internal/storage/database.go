package storage

import (
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/logging"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the database and brings the schema up to date.
// When postgresDSN is non-empty the Postgres driver is used; otherwise
// the SQLite file at sqlitePath. TranslateError is enabled so unique
// constraint violations surface as gorm.ErrDuplicatedKey on both drivers.
func OpenAndMigrate(sqlitePath, postgresDSN string, abilitiesFromConfig []game.Ability) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if postgresDSN != "" {
		dialector = postgres.Open(postgresDSN)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.Ability{}, &game.Avatar{}, &game.Match{}, &game.Turn{}, &game.StudentStats{})
	if err != nil {
		return nil, err
	}

	// The (match_id, round) uniqueness is the round-monotonicity
	// invariant: no two turns may ever share a round in one match. The
	// model tags declare it; the explicit statement covers databases
	// migrated before the tag existed.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_match_turns_round ON match_turns(match_id, round);").Error; execErr != nil {
		return nil, execErr
	}

	seedDefaultAbilities(db, abilitiesFromConfig)
	return db, nil
}

// seedDefaultAbilities inserts the configured ability catalog on first
// run. Effect values are never persisted; the config stays the source of
// truth for balance numbers.
func seedDefaultAbilities(db *gorm.DB, abilitiesFromConfig []game.Ability) {
	var count int64
	db.Model(&game.Ability{}).Count(&count)
	if count > 0 {
		return
	}
	abilities := make([]game.Ability, 0, len(abilitiesFromConfig))
	abilities = append(abilities, abilitiesFromConfig...)
	if err := db.Create(&abilities).Error; err != nil {
		logging.Error("failed to seed ability catalog", err, nil)
		return
	}
	logging.Info("ability catalog seeded", logging.Fields{"count": len(abilities)})
}
