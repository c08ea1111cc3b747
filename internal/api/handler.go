package api

import (
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/service"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"
)

// ArenaHandler groups all match-engine HTTP handlers.
type ArenaHandler struct {
	engine *service.Engine
	repo   storage.Repository
}

// NewArenaHandler creates an ArenaHandler over the engine services and
// the repository (used for read-only catalog and leaderboard queries).
func NewArenaHandler(engine *service.Engine, repo storage.Repository) *ArenaHandler {
	return &ArenaHandler{engine: engine, repo: repo}
}
