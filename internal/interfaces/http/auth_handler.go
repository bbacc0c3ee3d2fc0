package http

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/slodongo/kgl-api/internal/application/auth"
	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactRe = regexp.MustCompile(`^\d{10,15}$`)
)

// AuthHandler registration, login and profile lookup.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	var errs []string
	if len(in.Name) < 3 {
		errs = append(errs, "Name must be at least 3 characters long")
	}
	if !emailRe.MatchString(in.Email) {
		errs = append(errs, "Please provide a valid email address")
	}
	if len(in.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	if in.Password != in.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	if !entity.ValidRole(in.Role) {
		errs = append(errs, "Role must be one of: director, manager, procurement, agent")
	}
	if !entity.ValidBranch(in.Branch) {
		errs = append(errs, "Branch must be either branch1 or branch2")
	}
	if !contactRe.MatchString(in.Contact) {
		errs = append(errs, "Contact must be a phone number of 10 to 15 digits")
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: errs})
	}

	out, err := h.uc.Register(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Email is already registered"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Email and password are required"})
	}

	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid email or password"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Profile handles GET /api/auth/profile/:id.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
