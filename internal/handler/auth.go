package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
	"pharma-service/pkg/jwtutil"
	"pharma-service/pkg/logger"
	"pharma-service/prometheus"
)

// AuthHandler serves login and registration against the users collection
type AuthHandler struct {
	Store store.Store
}

// Login validates email+password+role and issues a signed session token. Any
// mismatch gets the same generic 401 so callers cannot probe which field was
// wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	defer prometheus.TrackStoreOperation(model.CollectionUsers, "list")(time.Now())
	users, err := h.Store.List(model.CollectionUsers)
	if err != nil {
		log.Error("Failed to load users", zap.Error(err))
		prometheus.RecordAuthError("store_failure")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Login failed",
		})
	}

	var user model.Record
	for _, u := range users {
		if u.String("email") == req.Email && u.String("role") == req.Role {
			user = u
			break
		}
	}
	if user == nil {
		log.Warn("Login failed, no matching user", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.String("password")), []byte(req.Password)); err != nil {
		log.Warn("Login failed, password mismatch", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	}

	token, err := jwtutil.GenerateToken(user.ID(), user.String("email"), user.String("role"))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Login failed",
		})
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("User logged in",
		zap.String("email", user.String("email")),
		zap.String("role", user.String("role")))

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Login successful",
		"user":      user.WithoutPassword(),
		"token":     token,
		"dashboard": model.Role(user.String("role")).Dashboard(),
	})
}

// Register creates a new user if the email is unused
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Email and password are required",
		})
	}
	if !model.Role(req.Role).Valid() {
		prometheus.RecordAuthError("invalid_role")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid role",
		})
	}

	defer prometheus.TrackStoreOperation(model.CollectionUsers, "list")(time.Now())
	users, err := h.Store.List(model.CollectionUsers)
	if err != nil {
		log.Error("Failed to load users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Registration failed",
		})
	}
	for _, u := range users {
		if u.String("email") == req.Email {
			log.Warn("Registration rejected, email taken", zap.String("email", req.Email))
			prometheus.RecordAuthError("email_already_exists")
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "User already exists",
			})
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Registration failed",
		})
	}

	user, err := h.Store.Create(model.CollectionUsers, model.Record{
		"email":    req.Email,
		"password": string(hash),
		"role":     req.Role,
		"name":     req.Name,
		"phone":    req.Phone,
	})
	if err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Registration failed",
		})
	}

	prometheus.AuthSuccessCounter.Inc()
	prometheus.RecordEntityOperation("user", "create")
	log.Info("User registered",
		zap.String("email", req.Email),
		zap.String("role", req.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Registration successful",
		"user":    user.WithoutPassword(),
	})
}
