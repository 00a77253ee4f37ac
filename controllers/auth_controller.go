package controller

import (
	"errors"
	"time"

	"captiveportal/config"
	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	Auth   *repository.AuthRepository
	Logger *logrus.Entry
}

func NewAuthController(auth *repository.AuthRepository, logger *logrus.Entry) *AuthController {
	return &AuthController{
		Auth:   auth,
		Logger: logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	session, err := ac.Auth.Login(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		ac.Logger.WithField("ip", c.IP()).Warn("Failed login attempt")
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Credenziali non valide. Usa demo@esempio.it / demo123", nil)
	}
	if err != nil {
		utils.LogError("login_failed", err, map[string]interface{}{"ip": c.IP()})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to start session", err)
	}

	token, expiresAt, err := utils.GenerateJWTToken(session.User, session.SessionID)
	if err != nil {
		utils.LogError("token_generation_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens", err)
	}

	// Set secure HTTP-only cookie
	accessCookie := new(fiber.Cookie)
	accessCookie.Name = "access_token"
	accessCookie.Value = token
	accessCookie.Expires = expiresAt
	accessCookie.HTTPOnly = true
	accessCookie.Secure = config.AppConfig.Environment == "production"
	accessCookie.SameSite = "Lax"
	c.Cookie(accessCookie)

	utils.LogEvent("user_login", map[string]interface{}{
		"user_id":    session.User.ID,
		"session_id": session.SessionID,
	})

	return c.JSON(utils.SuccessResponse(AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        session.User,
	}))
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Auth.Logout(c.UserContext()); err != nil {
		utils.LogError("logout_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to end session", err)
	}
	c.ClearCookie("access_token")
	return c.JSON(utils.SuccessResponse(fiber.Map{"message": "Logged out"}))
}

// GetCurrentUser returns the active session
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	session, err := ac.Auth.Current(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load session", err)
	}
	return c.JSON(utils.SuccessResponse(session))
}
