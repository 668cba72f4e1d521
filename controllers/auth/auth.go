package auth

import (
	"context"
	"time"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/types"
	"travel-portal/types/user"

	"github.com/gofiber/fiber/v2"
)

// UserGateway is the part of the user service the auth endpoints use.
type UserGateway interface {
	Register(ctx context.Context, payload user.RegisterPayload) (*user.User, error)
	Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error)
	Profile(ctx context.Context, token string) (*user.User, error)
	UpdateUser(ctx context.Context, token, id string, req user.UpdateRequest) (*user.User, error)
}

type AuthController struct {
	users        UserGateway
	secureCookie bool
	tokenTTL     time.Duration
}

func NewAuthController(users UserGateway, secureCookie bool) *AuthController {
	return &AuthController{users: users, secureCookie: secureCookie, tokenTTL: 24 * time.Hour}
}

// Helper function to set the access cookie based on environment
func (h *AuthController) setAccessCookie(c *fiber.Ctx, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessCookie,
		Value:    value,
		HTTPOnly: true,
		Secure:   h.secureCookie, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}

	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid registration")
	}

	created, err := h.users.Register(c.UserContext(), req.Payload())
	if err != nil {
		return server.Fail(c, err, "Registration failed")
	}

	logger.Success("Registered user " + created.Email)
	return server.Respond(c, fiber.StatusCreated, "Registration successful", created)
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}

	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid login")
	}

	resp, err := h.users.Login(c.UserContext(), req)
	if err != nil {
		return server.Fail(c, err, "Login failed")
	}
	if resp.Token == "" {
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Login did not return a token",
			Status:  fiber.StatusBadGateway,
		})
	}

	h.setAccessCookie(c, resp.Token, int(h.tokenTTL.Seconds()))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   resp.Token,
		Data:    resp.User,
	})
}

func (h *AuthController) LogOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: "Strict",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
	})
	return server.Respond(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (h *AuthController) Profile(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	profile, err := h.users.Profile(c.UserContext(), p.Token)
	if err != nil {
		return server.Fail(c, err, "Failed to load profile")
	}
	return server.Respond(c, fiber.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateProfile edits the caller's own account. The role cannot be
// changed this way.
func (h *AuthController) UpdateProfile(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var req user.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	req.Role = ""
	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid profile update")
	}

	updated, err := h.users.UpdateUser(c.UserContext(), p.Token, p.UserID, req)
	if err != nil {
		return server.Fail(c, err, "Failed to update profile")
	}
	return server.Respond(c, fiber.StatusOK, "Profile updated successfully", updated)
}
