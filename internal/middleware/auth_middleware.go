package middleware

import (
	"errors"
	"strings"

	"it-inventory/internal/model"
	"it-inventory/internal/scope"
	"it-inventory/internal/service"
	"it-inventory/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	localUser   = "user"
	localViewer = "viewer"
)

// RequireAuth validates the bearer token against the stored user and puts the
// user and its Viewer into the request locals.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		user, err := auth.Authenticate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": authMessage(err)})
		}

		c.Locals(localUser, user)
		c.Locals(localViewer, scope.NewViewer(user))
		return c.Next()
	}
}

// RequireSocketAuth authenticates a websocket handshake. Browsers cannot set
// headers on the upgrade request, so the token may also be passed as ?token=.
func RequireSocketAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			parts := strings.Split(c.Get("Authorization"), " ")
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		user, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": authMessage(err)})
		}

		c.Locals(localUser, user)
		c.Locals(localViewer, scope.NewViewer(user))
		return c.Next()
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid or expired token"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrUserInactive):
		return "User account is inactive"
	case errors.Is(err, service.ErrSessionReplaced):
		return "Session expired (logged in on another device)"
	default:
		return "Unauthorized"
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *fiber.Ctx) (*model.User, bool) {
	u, ok := c.Locals(localUser).(*model.User)
	return u, ok
}

// CurrentViewer returns the viewer stored by RequireAuth. Without one the
// zero Viewer is returned, which sees nothing.
func CurrentViewer(c *fiber.Ctx) scope.Viewer {
	v, _ := c.Locals(localViewer).(scope.Viewer)
	return v
}

// SocketViewer returns the viewer RequireSocketAuth stored before the upgrade.
func SocketViewer(c *websocket.Conn) scope.Viewer {
	v, _ := c.Locals(localViewer).(scope.Viewer)
	return v
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return RequireAnyPrivilege(requiredPrivilege)
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, reqPriv := range requiredPrivileges {
			if user.HasPrivilege(reqPriv) {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + strings.Join(requiredPrivileges, "' or '") + "' privilege",
		})
	}
}
