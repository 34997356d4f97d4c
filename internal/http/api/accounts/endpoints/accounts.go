package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vantage-apps/keystone/internal/db"
	"github.com/vantage-apps/keystone/internal/events"
	"github.com/vantage-apps/keystone/internal/http/api"
	"github.com/vantage-apps/keystone/internal/http/api/accounts/packets"
	"github.com/vantage-apps/keystone/internal/http/middleware"
	"github.com/vantage-apps/keystone/internal/redis"
)

// AccountModule mounts the account endpoints
// (/register, /login, /delete/:id, /edit/:id).
func AccountModule(jwtSecret string, store db.Store, limiter *redis.LoginLimiter, publisher *events.Publisher) api.Module {
	ctl := newAccountManager(jwtSecret, store, limiter, publisher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/register", ctl.register)
		c.POST("/login", ctl.login)
		c.DELETE("/delete/:id", ctl.deleteUser)
		c.PUT("/edit/:id", ctl.editUser)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
	limiter   *redis.LoginLimiter
	publisher *events.Publisher
}

func newAccountManager(secret string, store db.Store, limiter *redis.LoginLimiter, publisher *events.Publisher) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store, limiter: limiter, publisher: publisher}
}

// POST /register
func (a *AccountManager) register(ctx *gin.Context) (int, any, *api.Error) {
	var request packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return 0, nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not register user"}
	}

	userID, err := a.store.CreateUser(request.Name, request.Email, hashed)
	if err != nil {
		// the store error never crosses the boundary
		return 0, nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not register user"}
	}

	a.publisher.Publish(events.AccountRegistered, userID, request.Email)
	log.Info().Int("user_id", userID).Msg("user registered")

	return http.StatusCreated, gin.H{"message": "user registered"}, nil
}

// POST /login
func (a *AccountManager) login(ctx *gin.Context) (int, any, *api.Error) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if !a.limiter.Allow(ctx.Request.Context(), request.Email) {
		return 0, nil, &api.Error{Code: http.StatusTooManyRequests, Message: "too many attempts"}
	}

	foundUser, err := a.store.GetUserByEmail(request.Email)
	if err != nil {
		// a store failure is indistinguishable from an absent row here,
		// matching the reference behavior
		a.limiter.RecordFailure(ctx.Request.Context(), request.Email)
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: "user not found"}
	}

	if !middleware.CheckPassword(foundUser.PasswordHash, request.Password) {
		a.limiter.RecordFailure(ctx.Request.Context(), request.Email)
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: "wrong password"}
	}

	token, err := middleware.GenerateToken(foundUser.ID, foundUser.Email, a.jwtSecret)
	if err != nil {
		return 0, nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	a.limiter.Reset(ctx.Request.Context(), request.Email)

	return http.StatusOK, gin.H{"token": token}, nil
}

// DELETE /delete/:id
func (a *AccountManager) deleteUser(ctx *gin.Context) (int, any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid user id"}
	}

	rows, err := a.store.DeleteUser(id)
	if err != nil {
		return 0, nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete user"}
	}
	if rows == 0 {
		return 0, nil, &api.Error{Code: http.StatusNotFound, Message: "user not found"}
	}

	a.publisher.Publish(events.AccountDeleted, id, "")
	log.Info().Int("user_id", id).Msg("user deleted")

	return http.StatusOK, gin.H{"message": "user deleted"}, nil
}

// PUT /edit/:id
func (a *AccountManager) editUser(ctx *gin.Context) (int, any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid user id"}
	}

	var request packets.EditRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return 0, nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	// name and email are written through unconditionally; only the password
	// column is conditional on a value being supplied
	if request.Password != "" {
		hashed, err := middleware.HashPassword(request.Password)
		if err != nil {
			return 0, nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update user"}
		}
		err = a.store.UpdateUserCredentials(id, request.Name, request.Email, hashed)
		if apiErr := updateError(err); apiErr != nil {
			return 0, nil, apiErr
		}
	} else {
		err = a.store.UpdateUserProfile(id, request.Name, request.Email)
		if apiErr := updateError(err); apiErr != nil {
			return 0, nil, apiErr
		}
	}

	a.publisher.Publish(events.AccountUpdated, id, request.Email)
	log.Info().Int("user_id", id).Msg("user updated")

	return http.StatusOK, gin.H{"message": "user updated"}, nil
}

func updateError(err error) *api.Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return &api.Error{Code: http.StatusNotFound, Message: "user not found"}
	default:
		return &api.Error{Code: http.StatusInternalServerError, Message: "could not update user"}
	}
}
