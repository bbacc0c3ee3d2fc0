package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/domain/repository"
	"github.com/slodongo/kgl-api/pkg/jwt"
)

// Locals keys written by the auth and populate-user stages.
const (
	LocalUserID     = "user_id"
	LocalEmail      = "email"
	LocalRole       = "role"
	LocalUserName   = "user_name"
	LocalUserBranch = "user_branch"
)

// AuthMiddleware validates the Bearer token and writes user_id, email and
// role to c.Locals. Any token defect surfaces as a single generic 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid authorization format. Use: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid or expired token"})
		}
		userID, email, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid or expired token"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// PopulateUser loads the token's user and writes name and branch to
// c.Locals. A valid token whose user was since deleted gets a 404; handlers
// that denormalize the agent name or check branch ownership depend on this
// stage running.
func PopulateUser(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := userRepo.GetByID(GetUserID(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load user"})
		}
		if user == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		c.Locals(LocalUserName, user.Name)
		c.Locals(LocalUserBranch, user.Branch)
		return c.Next()
	}
}

// RequireRole allows only the listed roles through. The 403 body names both
// sides so a misconfigured client can see what it sent.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("Access denied. Required roles: %s. Your role: %s", strings.Join(roles, ", "), role),
		})
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserID returns the caller's user id (after AuthMiddleware).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetEmail returns the caller's email (after AuthMiddleware).
func GetEmail(c *fiber.Ctx) string { return localString(c, LocalEmail) }

// GetRole returns the caller's role (after AuthMiddleware).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetUserName returns the caller's display name (after PopulateUser).
func GetUserName(c *fiber.Ctx) string { return localString(c, LocalUserName) }

// GetUserBranch returns the caller's branch (after PopulateUser).
func GetUserBranch(c *fiber.Ctx) string { return localString(c, LocalUserBranch) }
