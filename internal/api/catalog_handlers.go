package api

import (
	"net/http"
	"strconv"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/version"

	"github.com/gin-gonic/gin"
)

// ListAbilities returns the full ability catalog.
func (h *ArenaHandler) ListAbilities(c *gin.Context) {
	abilities, err := h.repo.GetAbilities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchAbilities})
		return
	}
	c.JSON(http.StatusOK, abilities)
}

// ListLeaderboard returns the top students by wins (desc), limited to 10
// by default.
func (h *ArenaHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	stats, err := h.repo.GetTopStudents(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetVersion reports the build version stamp.
func (h *ArenaHandler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}
