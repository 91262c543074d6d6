package userservice

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserController exposes the account endpoints over HTTP.
type UserController struct {
	Users  Users
	Auth   *Authenticator
	Logger Logger
}

type UserControllerOption func(*UserController) *UserController

func WithControllerLogger(logger Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func NewUserController(users Users, auth *Authenticator, opts ...UserControllerOption) *UserController {
	c := &UserController{
		Users:  users,
		Auth:   auth,
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil {
		panic("Missing Users repository in user controller...")
	}

	if c.Auth == nil {
		panic("Missing Authenticator in user controller...")
	}

	return c
}

// RegisterRoutes mounts the HTTP surface. Login and registration stay
// public; everything else under the API group goes through the
// authorizer middleware.
func (a *UserController) RegisterRoutes(app *fiber.App, authorizer fiber.Handler) {
	app.Get("/health", a.Health)

	api := app.Group("/api/v1")

	api.Post("/user/login", a.Login)
	api.Post("/user", a.Create)
	api.Get("/user/:id", authorizer, a.Show)
}

func (a *UserController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Email,
				validation.Required,
				is.Email,
			),
			validation.Field(
				&r.Password,
				validation.Required,
			),
		)
	}, "Invalid login request payload")
}

// TokenResponse carries the freshly issued bearer credential.
type TokenResponse struct {
	Token string `json:"token"`
}

func (a *UserController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	// credentials arrive as a form or JSON body, with query
	// parameters as a fallback for legacy clients
	if err := c.BodyParser(payload); err != nil && err != fiber.ErrUnprocessableEntity {
		a.Logger.Debug("Login parse payload: %s", err)
	}

	if payload.Email == "" {
		payload.Email = c.Query("email")
	}
	if payload.Password == "" {
		payload.Password = c.Query("password")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	_, token, err := a.Auth.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	return c.JSON(TokenResponse{Token: authScheme + " " + token})
}

// CreateUserRequest is the registration payload
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
}

// Validate will run validation rules
func (r CreateUserRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required),
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
			validation.Field(&r.Role, validation.In(
				string(RoleGuest),
				string(RoleMember),
				string(RoleAdmin),
			)),
		)
	}, "Invalid user registration payload")
}

func (a *UserController) Create(c *fiber.Ctx) error {
	payload := new(CreateUserRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Create user parse payload: %s", err)
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse registration payload")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return err
	}

	// an empty role falls through to the repository default
	role, _ := ParseRole(payload.Role)

	user := &User{
		Username:     payload.Username,
		Email:        payload.Email,
		Role:         role,
		PasswordHash: hash,
	}

	created, err := a.Users.Register(c.UserContext(), user)
	if err != nil {
		a.Logger.Error("Create user register: %s", err)
		return err
	}

	return c.JSON(NewUserDTO(created))
}

func (a *UserController) Show(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid user identifier").
			WithMetadata(map[string]any{"id": c.Params("id")})
	}

	user, err := a.Users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(NewUserDTO(user))
}
