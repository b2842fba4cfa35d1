package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/middleware"
)

// actorFrom rebuilds the acting identity from the values the auth middleware
// stored. Only valid on routes behind AuthMiddleware.
func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.MustGet(middleware.ContextUserID).(uint),
		Role: c.MustGet(middleware.ContextUserRole).(string),
	}
}

// optionalActorFrom is for routes behind OptionalAuthMiddleware: ok is false
// on anonymous requests.
func optionalActorFrom(c *gin.Context) (authz.Actor, bool) {
	id, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return authz.Actor{}, false
	}
	role, _ := c.Get(middleware.ContextUserRole)
	return authz.Actor{
		ID:   id.(uint),
		Role: role.(string),
	}, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// respondError maps business codes onto HTTP statuses; 400 is the default for
// business failures, anything unexpected answers 500.
func respondError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "booking_not_found", "service_not_found", "assignment_not_found",
			"review_not_found", "notification_not_found", "message_not_found",
			"leave_not_found", "user_not_found":
			httperr.NotFound(c, be.Message)
			return
		case "forbidden":
			httperr.Forbidden(c, be.Message)
			return
		}
	}
	httperr.FromError(c, err)
}
