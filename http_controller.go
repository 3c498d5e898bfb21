package session

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// SessionControllerRoutes names the paths the controller mounts.
type SessionControllerRoutes struct {
	SignIn    string
	SignUp    string
	SignOut   string
	Dashboard string
}

// SessionControllerViews names the templates the controller renders.
type SessionControllerViews struct {
	SignIn    string
	SignUp    string
	Dashboard string
}

type SessionController struct {
	Debug   bool
	Logger  Logger
	Manager *Manager
	Routes  *SessionControllerRoutes
	Views   *SessionControllerViews
}

type SessionControllerOption func(*SessionController) *SessionController

// WithControllerManager wires the session manager.
func WithControllerManager(manager *Manager) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		c.Manager = manager
		return c
	}
}

// WithControllerLogger overrides the default logger.
func WithControllerLogger(logger Logger) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func NewSessionController(opts ...SessionControllerOption) *SessionController {
	c := &SessionController{
		Logger: defLogger{},
		Routes: &SessionControllerRoutes{
			SignIn:    "/signin",
			SignUp:    "/signup",
			SignOut:   "/signout",
			Dashboard: "/dashboard",
		},
		Views: &SessionControllerViews{
			SignIn:    "signin",
			SignUp:    "signup",
			Dashboard: "dashboard",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Manager == nil {
		panic("Missing Manager in session controller...")
	}

	return c
}

// RegisterSessionRoutes mounts the sign-in, sign-up, sign-out, and protected
// dashboard routes. The unauthenticated landing path and the catch-all both
// resolve to the sign-in entry point.
func RegisterSessionRoutes[T any](app router.Router[T], opts ...SessionControllerOption) {
	controller := NewSessionController(opts...)
	protected := controller.Manager.Protected()

	app.Get(controller.Routes.SignIn, controller.SignInShow).
		SetName("sign-in.get")
	app.Post(controller.Routes.SignIn, controller.SignInPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.SignUp, controller.SignUpShow).
		SetName("sign-up.get")
	app.Post(controller.Routes.SignUp, controller.SignUpCreate).
		SetName("sign-up.post")

	app.Get(controller.Routes.SignOut, controller.SignOut).
		SetName("sign-out.get")

	app.Get(controller.Routes.Dashboard, protected(controller.Dashboard)).
		SetName("dashboard.get")

	app.Get("/", controller.Landing).SetName("landing.get")
	app.Get("/*", controller.Landing).SetName("catch-all.get")
}

func (a *SessionController) SignInShow(ctx router.Context) error {
	return ctx.Render(a.Views.SignIn, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// SignInRequest payload
type SignInRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
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
}

func (a *SessionController) SignInPost(ctx router.Context) error {
	payload := new(SignInRequest)
	fieldErrors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("sign in parse payload: ", "error", err)
		fieldErrors["form"] = "Failed to parse form"
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.SignIn, router.ViewContext{
			"errors": fieldErrors,
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.SignIn, router.ViewContext{
			"record":     payload,
			"validation": formatValidationErrors(err),
		})
	}

	credentials := Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	}

	if _, err := a.Manager.SignIn(ctx.Context(), credentials); err != nil {
		// the service message lands in the email slot regardless of the
		// offending field; the form has no general error slot
		fieldErrors["email"] = failureMessage(err)
		return ctx.Render(a.Views.SignIn, router.ViewContext{
			"errors": fieldErrors,
			"record": payload,
		})
	}

	redirect := a.Manager.GetRedirect(ctx, a.Routes.Dashboard)
	return ctx.Redirect(redirect, router.StatusSeeOther)
}

func (a *SessionController) SignUpShow(ctx router.Context) error {
	return ctx.Render(a.Views.SignUp, router.ViewContext{
		"errors": map[string]string{},
		"record": SignUpPayload{},
	})
}

// SignUpPayload is the form payload
type SignUpPayload struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will validate the payload
func (r SignUpPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *SessionController) SignUpCreate(ctx router.Context) error {
	payload := new(SignUpPayload)
	fieldErrors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("sign up parse payload: ", "error", err)
		fieldErrors["form"] = "Failed to parse form"
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.SignUp, router.ViewContext{
			"errors": fieldErrors,
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("sign up validate payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(a.Views.SignUp, router.ViewContext{
			"record":     payload,
			"validation": formatValidationErrors(err),
		})
	}

	candidate := Identity{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	}

	if err := a.Manager.Client().SignUp(ctx.Context(), candidate); err != nil {
		a.Logger.Error("sign up exchange failed", "error", err)
		fieldErrors["email"] = failureMessage(err)
		return ctx.Render(a.Views.SignUp, router.ViewContext{
			"errors": fieldErrors,
			"record": payload,
		})
	}

	// signup never authenticates the session; the user signs in explicitly
	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account created, please sign in",
	}).Redirect(a.Routes.SignIn, fiber.StatusSeeOther)
}

func (a *SessionController) SignOut(ctx router.Context) error {
	a.Manager.Logout()
	return ctx.Redirect(a.Routes.SignIn, router.StatusSeeOther)
}

// Dashboard is the protected view. The route-level gate has already passed;
// this is the second, view-level layer: durable token and in-memory
// identity must both be present or the view redirects instead of rendering.
func (a *SessionController) Dashboard(ctx router.Context) error {
	bootstrap := NewBootstrap(a.Manager.tokens, a.Manager.Store(),
		WithBootstrapLogger(a.Logger),
	)

	if state := bootstrap.Resolve(); state != MountAuthorized {
		a.Manager.SetRedirect(ctx)
		return ctx.Redirect(a.Routes.SignIn, router.StatusSeeOther)
	}

	identity, _ := a.Manager.Store().Get()
	ctx.SetContext(WithIdentity(ctx.Context(), &identity))

	return ctx.Render(a.Views.Dashboard, router.ViewContext{
		"user": identity,
	})
}

// Landing resolves the unauthenticated landing path and the catch-all to
// the sign-in entry point; signed-in visitors land on the dashboard.
func (a *SessionController) Landing(ctx router.Context) error {
	if a.Manager.Store().IsAuthenticated() {
		return ctx.Redirect(a.Routes.Dashboard, router.StatusFound)
	}
	return ctx.Redirect(a.Routes.SignIn, router.StatusFound)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

func formatValidationErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}

// failureMessage prefers the rich error message so the service-provided
// text reaches the form.
func failureMessage(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Message
	}
	return err.Error()
}
