package user

import (
	"context"
	"fmt"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/services/tables"
	"travel-portal/types"
	userTypes "travel-portal/types/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// UserGateway is the user service as administrators see it.
type UserGateway interface {
	CreateUser(ctx context.Context, token string, payload userTypes.RegisterPayload) (*userTypes.User, error)
	GetUser(ctx context.Context, token, id string) (*userTypes.User, error)
	ListUsers(ctx context.Context, token string) ([]userTypes.User, error)
	SearchUsers(ctx context.Context, token, name string) ([]userTypes.User, error)
	UpdateUser(ctx context.Context, token, id string, req userTypes.UpdateRequest) (*userTypes.User, error)
	DeleteUser(ctx context.Context, token, id string) error
}

type UserController struct {
	users UserGateway
}

func NewUserController(users UserGateway) *UserController {
	return &UserController{users: users}
}

// List is the admin user table. A name query is answered by the user
// service's search endpoint, the rest of the query by the table.
func (uc *UserController) List(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var (
		users []userTypes.User
		err   error
	)
	if name := c.Query("name"); name != "" {
		users, err = uc.users.SearchUsers(c.UserContext(), p.Token, name)
	} else {
		users, err = uc.users.ListUsers(c.UserContext(), p.Token)
	}
	if err != nil {
		return server.Fail(c, err, "Error fetching users")
	}
	return server.Respond(c, fiber.StatusOK, "Users fetched successfully", tables.Users.Apply(users, c.Queries()))
}

func (uc *UserController) Show(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	u, err := uc.users.GetUser(c.UserContext(), p.Token, c.Params("id"))
	if err != nil {
		return server.Fail(c, err, "Error fetching user")
	}
	return server.Respond(c, fiber.StatusOK, "User fetched successfully", u)
}

// Create adds an account with any role, ADMIN included.
func (uc *UserController) Create(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var req userTypes.AdminCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid user")
	}

	created, err := uc.users.CreateUser(c.UserContext(), p.Token, req.Payload())
	if err != nil {
		return server.Fail(c, err, "Error creating user")
	}
	logger.Success(fmt.Sprintf("User %s created with role %s by %s", created.ID, created.Role, p.UserID))
	return server.Respond(c, fiber.StatusCreated, "User created successfully", created)
}

func (uc *UserController) Update(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var req userTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid user")
	}

	updated, err := uc.users.UpdateUser(c.UserContext(), p.Token, c.Params("id"), req)
	if err != nil {
		return server.Fail(c, err, "Error updating user")
	}
	return server.Respond(c, fiber.StatusOK, "User updated successfully", updated)
}

// Delete removes an account. Administrators cannot delete themselves.
func (uc *UserController) Delete(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	id := utils.CopyString(c.Params("id"))

	if id == p.UserID {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "You cannot delete your own account",
			Status:  fiber.StatusConflict,
		})
	}
	if err := uc.users.DeleteUser(c.UserContext(), p.Token, id); err != nil {
		return server.Fail(c, err, "Error deleting user")
	}
	logger.Warning(fmt.Sprintf("User %s deleted by %s", id, p.UserID))
	return server.Respond(c, fiber.StatusOK, "User deleted successfully", nil)
}
