package handlers

import (
	"errors"

	"parfum/internal/models"
	"parfum/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for the admin session.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/session", h.HandleSession)
}

// RegisterProtectedRoutes registers the routes that need an open session.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/auth/logout", h.HandleLogout)
}

// HandleLogin opens the admin session and returns a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(creds); err != nil {
		return validationFailed(c, err)
	}

	token, err := h.authService.Login(creds)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
				"error":   err.Error(),
			})
		}
		logrus.WithError(err).Error("Error during login")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Login failed. Please try again.",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleSession reports whether a session is open and the remembered email.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	session, err := h.authService.Session()
	if err != nil {
		logrus.WithError(err).Error("Error reading session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read session",
			"error":   err.Error(),
		})
	}
	return c.JSON(session)
}

// HandleLogout closes the admin session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(); err != nil {
		logrus.WithError(err).Error("Error during logout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log out",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
