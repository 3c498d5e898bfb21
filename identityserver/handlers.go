package identityserver

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

type signUpPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (p signUpPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

type signInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(c *fiber.Ctx) error {
	payload := new(signUpPayload)
	if err := c.BodyParser(payload); err != nil {
		return s.reply(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return s.reply(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Context()

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return s.reply(c, fiber.StatusConflict, ErrUserExists.Message)
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("signup hash failed", "error", err)
		return s.reply(c, fiber.StatusInternalServerError, "signup failed")
	}

	user := &User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
	}
	if id, err := hashid.NewUUID(payload.Email); err == nil {
		user.ID = id
	} else {
		user.ID = uuid.New()
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("signup create failed", "error", err)
		return s.reply(c, fiber.StatusConflict, ErrUserExists.Message)
	}

	token, err := s.tokens.Mint(user)
	if err != nil {
		s.logger.Error("signup mint failed", "error", err)
		return s.reply(c, fiber.StatusInternalServerError, "signup failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
	})
}

func (s *Server) handleSignIn(c *fiber.Ctx) error {
	payload := new(signInPayload)
	if err := c.BodyParser(payload); err != nil {
		return s.reply(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx := c.Context()

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		// same reply as a bad password so emails cannot be probed
		return s.reply(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Message)
	}

	if err := ComparePasswordAndHash(payload.Password, user.PasswordHash); err != nil {
		return s.reply(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Message)
	}

	token, err := s.tokens.Mint(user)
	if err != nil {
		s.logger.Error("signin mint failed", "error", err)
		return s.reply(c, fiber.StatusInternalServerError, "sign in failed")
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID.String(),
			"email": user.Email,
			"name":  user.Name,
		},
		"token": token,
	})
}

func (s *Server) handleGetUser(c *fiber.Ctx) error {
	raw := bearerToken(c.Get(fiber.HeaderAuthorization))
	if raw == "" {
		return s.reply(c, fiber.StatusUnauthorized, ErrTokenInvalid.Message)
	}

	if _, err := s.tokens.Validate(raw); err != nil {
		return s.reply(c, fiber.StatusUnauthorized, ErrTokenInvalid.Message)
	}

	user, err := s.users.GetByUserID(c.Context(), c.Params("id"))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return s.reply(c, fiber.StatusNotFound, ErrUserNotFound.Message)
		}
		s.logger.Error("user lookup failed", "error", err)
		return s.reply(c, fiber.StatusInternalServerError, "failed to fetch user data")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
	})
}

func (s *Server) reply(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func bearerToken(header string) string {
	const scheme = "Bearer "
	if !strings.HasPrefix(header, scheme) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, scheme))
}
