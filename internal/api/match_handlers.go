package api

import (
	"net/http"
	"strconv"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/service"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QueueRequest struct {
	Band string `json:"band"`
}

// EnqueueMatch queues the authenticated student for a match in a band.
func (h *ArenaHandler) EnqueueMatch(c *gin.Context) {
	var req QueueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}

	res, err := h.engine.Enqueue(c.Request.Context(), studentIDFromContext(c), req.Band)
	if err != nil {
		switch err {
		case service.ErrInvalidBand:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBand})
		case service.ErrNoAvatar:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNoAvatarFound})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedQueue})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

type ActRequest struct {
	AbilityID uint `json:"ability_id"`
}

// Act resolves one combat action for the authenticated student.
func (h *ArenaHandler) Act(c *gin.Context) {
	m, ok := h.resolveMatch(c)
	if !ok {
		return
	}
	avatar, ok := h.resolveAvatar(c)
	if !ok {
		return
	}
	var req ActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := h.engine.Act(c.Request.Context(), m.ID, avatar.ID, req.AbilityID)
	if err != nil {
		switch err {
		case service.ErrInvalidMatch:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotActive})
		case service.ErrNotParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotInMatch})
		case service.ErrNotYourTurn:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
		case service.ErrAbilityNotUnlocked:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrAbilityLocked})
		case service.ErrAbilityNotFound:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrAbilityUnknown})
		case service.ErrConcurrencyConflict:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchContended})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveTurn})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// ClaimTimeout lets the waiting player forfeit-claim a stalled match.
func (h *ArenaHandler) ClaimTimeout(c *gin.Context) {
	m, ok := h.resolveMatch(c)
	if !ok {
		return
	}
	avatar, ok := h.resolveAvatar(c)
	if !ok {
		return
	}

	res, err := h.engine.ClaimTimeout(m.ID, avatar.ID)
	if err != nil {
		switch err {
		case service.ErrInvalidMatch:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotActive})
		case service.ErrNotParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotInMatch})
		case service.ErrCannotClaimOwnTurn:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrOwnTurnClaim})
		case service.ErrTimeoutNotYetClaimable:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTimeoutTooEarly})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedClaimTimeout})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetMatch returns the full match projection for a participant.
func (h *ArenaHandler) GetMatch(c *gin.Context) {
	m, ok := h.resolveMatch(c)
	if !ok {
		return
	}
	avatar, ok := h.resolveAvatar(c)
	if !ok {
		return
	}

	state, err := h.engine.GetMatchState(m.ID, avatar.ID)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrNotParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAuthorized})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatch})
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// resolveMatch looks up the match from the path parameter, which may be
// either the numeric registry ID or the public match UUID.
func (h *ArenaHandler) resolveMatch(c *gin.Context) (*game.Match, bool) {
	param := c.Param("matchID")
	var (
		m   *game.Match
		err error
	)
	if id, convErr := strconv.ParseUint(param, 10, 64); convErr == nil {
		m, err = h.repo.GetMatchByID(uint(id))
	} else if _, parseErr := uuid.Parse(param); parseErr == nil {
		m, err = h.repo.GetMatchByUUID(param)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchID})
		return nil, false
	}
	if err != nil {
		if err == storage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatch})
		}
		return nil, false
	}
	return m, true
}

// resolveAvatar maps the session identity to the student's avatar.
func (h *ArenaHandler) resolveAvatar(c *gin.Context) (*game.Avatar, bool) {
	avatar, err := h.repo.GetAvatarByStudentID(studentIDFromContext(c))
	if err != nil {
		if err == storage.ErrNotFound {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNoAvatarFound})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrNoAvatarFound})
		}
		return nil, false
	}
	return avatar, true
}
