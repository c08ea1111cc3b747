package api

import (
	"net/http"
	"strings"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"

	"github.com/gin-gonic/gin"
)

const ctxStudentID = "studentID"

// AuthRequired validates the session token (cookie or bearer header) and
// injects the student identity into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(constants.CookieSessionName)
		if token == "" {
			auth := c.GetHeader(constants.HeaderAuthorization)
			if strings.HasPrefix(auth, constants.BearerPrefix) {
				token = strings.TrimPrefix(auth, constants.BearerPrefix)
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxStudentID, claims.Sub)
		c.Next()
	}
}

// studentIDFromContext returns the authenticated student ID, or "" when
// the middleware did not run.
func studentIDFromContext(c *gin.Context) string {
	v, ok := c.Get(ctxStudentID)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
