package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
	"pharma-service/pkg/logger"
	"pharma-service/prometheus"
)

// UserHandler serves the users collection. There is no create route here;
// registration is the only way a user comes into existence. Passwords never
// leave the server.
type UserHandler struct {
	Store store.Store
}

// ListUsers handles retrieving all users, passwords stripped
func (h *UserHandler) ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackStoreOperation(model.CollectionUsers, "list")(time.Now())
	users, err := h.Store.List(model.CollectionUsers)
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve users",
		})
	}

	prometheus.RecordEntityOperation("user", "list")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"users":   model.StripPasswords(users),
	})
}

// GetUser handles retrieving a single user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackStoreOperation(model.CollectionUsers, "get")(time.Now())
	user, err := h.Store.Get(model.CollectionUsers, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "User not found",
		})
	}
	if err != nil {
		log.Error("Failed to get user", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve user",
		})
	}

	prometheus.RecordEntityOperation("user", "get")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    user.WithoutPassword(),
	})
}

// UpdateUser shallow-merges the request body over the stored user
func (h *UserHandler) UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var fields model.Record
	if err := c.Bind(&fields); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	// passwords are stored hashed; a plaintext value merged here would never
	// match at login again
	if password := fields.String("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.String("user_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Failed to update user",
			})
		}
		fields["password"] = string(hash)
	}

	defer prometheus.TrackStoreOperation(model.CollectionUsers, "update")(time.Now())
	user, err := h.Store.Update(model.CollectionUsers, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "User not found",
		})
	}
	if err != nil {
		log.Error("Failed to update user", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to update user",
		})
	}

	prometheus.RecordEntityOperation("user", "update")
	log.Info("User updated", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User updated successfully",
		"user":    user.WithoutPassword(),
	})
}

// DeleteUser removes a user by ID
func (h *UserHandler) DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackStoreOperation(model.CollectionUsers, "delete")(time.Now())
	err := h.Store.Delete(model.CollectionUsers, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "User not found",
		})
	}
	if err != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to delete user",
		})
	}

	prometheus.RecordEntityOperation("user", "delete")
	log.Info("User deleted", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}
