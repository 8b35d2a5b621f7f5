package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/config"
	"vytara-server/internal/middleware"
	"vytara-server/internal/models"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Accounts *workspace.Accounts
	Registry *workspace.Registry
	Cfg      *config.Config
	Logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *workspace.Accounts, registry *workspace.Registry, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Registry: registry, Cfg: cfg, Logger: logger}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	Username        string             `json:"username" validate:"required"`
	Email           string             `json:"email" validate:"required,email"`
	Password        string             `json:"password" validate:"required,min=6"`
	ConfirmPassword string             `json:"confirmPassword" validate:"required,eqfield=Password"`
	Profile         models.UserProfile `json:"profile" validate:"-"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string             `json:"accessToken"`
	ExpiresAt   time.Time          `json:"expiresAt"`
	Username    string             `json:"username"`
	Profile     models.UserProfile `json:"profile"`
}

// MeResponse describes the logged-in user.
type MeResponse struct {
	Username   string             `json:"username"`
	Email      string             `json:"email,omitempty"`
	Registered bool               `json:"registered"`
	Profile    models.UserProfile `json:"profile"`
}

// Signup registers an account and logs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	username, ok := usernameOf(c, req.Username)
	if !ok {
		return
	}

	profile, err := workspace.PrepareProfile(req.Profile)
	if err != nil {
		h.respondProfileError(c, err)
		return
	}

	if _, err := h.Accounts.Register(username, req.Email, req.Password, profile); err != nil {
		if errors.Is(err, workspace.ErrUsernameTaken) {
			utils.Conflict(c, "Username is already registered")
			return
		}
		h.Logger.Error("register account", zap.String("user", username), zap.Error(err))
		utils.InternalServerError(c, "Failed to create account")
		return
	}

	h.Logger.Info("account registered", zap.String("user", username))
	h.startSession(c, username, profile, true)
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	username, ok := usernameOf(c, req.Username)
	if !ok {
		return
	}

	profile, err := h.Accounts.Authenticate(username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		h.Logger.Error("authenticate", zap.String("user", username), zap.Error(err))
		utils.InternalServerError(c, "Failed to log in")
		return
	}

	h.startSession(c, username, profile, false)
}

// usernameOf trims raw once so the account, the token and the workspace
// all agree on the same name.
func usernameOf(c *gin.Context, raw string) (string, bool) {
	username := strings.TrimSpace(raw)
	if username == "" {
		utils.ValidationFailed(c, map[string]string{"username": "username is required"}, nil)
		return "", false
	}
	return username, true
}

func (h *AuthHandler) startSession(c *gin.Context, username string, profile models.UserProfile, created bool) {
	token, expiresAt, err := utils.GenerateToken(username, h.Cfg)
	if err != nil {
		h.Logger.Error("generate token", zap.String("user", username), zap.Error(err))
		utils.InternalServerError(c, "Failed to generate token")
		return
	}
	h.Registry.Open(username, profile)

	resp := LoginResponse{AccessToken: token, ExpiresAt: expiresAt, Username: username, Profile: profile}
	if created {
		utils.Created(c, "Account created successfully", resp)
		return
	}
	utils.Success(c, "Login successful", resp)
}

func (h *AuthHandler) respondProfileError(c *gin.Context, err error) {
	if fields, ok := utils.FieldErrorsOf(err); ok {
		prefixed := make(map[string]string, len(fields))
		for k, v := range fields {
			prefixed["profile."+k] = v
		}
		utils.ValidationFailed(c, prefixed, nil)
		return
	}
	utils.BadRequest(c, err.Error())
}

// Logout discards the caller's workspace.
func (h *AuthHandler) Logout(c *gin.Context) {
	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	h.Registry.Close(username)
	utils.Success(c, "Logout successful", nil)
}

// Me returns the logged-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	ws, ok := middleware.GetWorkspaceFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	resp := MeResponse{Username: ws.User(), Profile: ws.Profile()}
	acc, ok, err := h.Accounts.Lookup(ws.User())
	if err != nil {
		h.Logger.Error("lookup account", zap.String("user", ws.User()), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch account")
		return
	}
	if ok {
		resp.Email = acc.Email
		resp.Registered = true
	}
	utils.Success(c, "Profile fetched successfully", resp)
}
