package server

import (
	"errors"
	"log/slog"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	flashInvalidCredentials = "Invalid credentials"
	flashResetSent          = "If an account uses that email, a reset link is on its way."
	flashResetFailed        = "We could not send the reset email. Please try again."
	flashPasswordChanged    = "Your password has been changed. Please log in."
	flashSignedUp           = "Your account has been created. Please log in."
)

// Home handles GET /
func (s *Server) Home(c *fiber.Ctx) error {
	return c.Redirect(middleware.LoginPath)
}

// SignupPage handles GET /signup
// @Summary Signup form
// @Description Renders the signup form with a fresh captcha stored in the session
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /signup [get]
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.renderSignup(c, "")
}

func (s *Server) renderSignup(c *fiber.Ctx, message string) error {
	captcha := service.GenerateCaptcha()
	session.From(c).SetCaptcha(captcha)
	return s.render(c, "signup", fiber.Map{
		"Message":      message,
		"RandomString": captcha,
	})
}

// Signup handles POST /signup
// @Summary Create an applicant account
// @Description Creates the user and profile in one transaction
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param firstname formData string true "First name"
// @Param lastname formData string true "Last name"
// @Param category formData string true "Category"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param re_password formData string true "Password again"
// @Param captcha formData string true "Captcha typed by the applicant"
// @Param randomString formData string true "Captcha shown on the form"
// @Success 200 {string} string "Signup form re-rendered on captcha mismatch"
// @Success 302 {string} string "Redirect to /login, or back to /signup on error"
// @Router /signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	sess := session.From(c)
	_, err := s.auth.Signup(c.UserContext(), service.SignupInput{
		FirstName:      c.FormValue("firstname"),
		LastName:       c.FormValue("lastname"),
		Category:       c.FormValue("category"),
		Email:          c.FormValue("email"),
		Password:       c.FormValue("password"),
		RePassword:     c.FormValue("re_password"),
		Captcha:        c.FormValue("captcha"),
		RandomString:   c.FormValue("randomString"),
		SessionCaptcha: sess.Captcha(),
	})

	switch {
	case err == nil:
		sess.SetCaptcha("")
		return redirectWithFlash(c, "/login", flashSignedUp)
	case errors.Is(err, service.ErrCaptchaMismatch):
		return s.renderSignup(c, service.ErrCaptchaMismatch.Message)
	case models.IsCode(err, models.CodeValidation), models.IsCode(err, models.CodeConflict):
		var appErr *models.AppError
		errors.As(err, &appErr)
		return redirectWithFlash(c, "/signup", appErr.Message)
	default:
		return err
	}
}

// LoginPage handles GET /login
// @Summary Login form
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /login [get]
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if session.From(c).Authenticated() {
		return c.Redirect("/formpages/1")
	}
	return s.render(c, "login", nil)
}

// Login handles POST /login
// @Summary Log in
// @Description Binds the applicant to a fresh session id
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 {string} string "Redirect to /formpages/1, or /login on failure"
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	user, err := s.auth.Login(c.UserContext(), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		if models.IsCode(err, models.CodeUnauthorized) {
			return redirectWithFlash(c, middleware.LoginPath, flashInvalidCredentials)
		}
		return err
	}

	session.From(c).Login(user.ID, user.Email)
	middleware.Logger.InfoContext(c.UserContext(), "applicant logged in", slog.Uint64("user_id", uint64(user.ID)))
	return c.Redirect("/formpages/1")
}

// Logout handles GET /logout
// @Summary Log out
// @Tags auth
// @Success 302 {string} string "Redirect to /login"
// @Router /logout [get]
func (s *Server) Logout(c *fiber.Ctx) error {
	session.From(c).Destroy()
	return c.Redirect(middleware.LoginPath)
}

// ResetPage handles GET /reset
// @Summary Password reset request form
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /reset [get]
func (s *Server) ResetPage(c *fiber.Ctx) error {
	return s.render(c, "reset", nil)
}

// RequestReset handles POST /reset
// @Summary Email a password reset link
// @Description Always redirects to /login so unknown addresses are not revealed
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Success 302 {string} string "Redirect to /login, or /reset when the mail relay fails"
// @Router /reset [post]
func (s *Server) RequestReset(c *fiber.Ctx) error {
	if err := s.reset.RequestReset(c.UserContext(), c.FormValue("email")); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "password reset request failed", slog.String("error", err.Error()))
		return redirectWithFlash(c, "/reset", flashResetFailed)
	}
	return redirectWithFlash(c, middleware.LoginPath, flashResetSent)
}

// ResetPasswordPage handles GET /reset-password/:token
// @Summary New password form
// @Tags auth
// @Produce html
// @Param token path string true "Reset token"
// @Success 200 {string} string "HTML page"
// @Failure 400 {string} string "Invalid or expired token"
// @Router /reset-password/{token} [get]
func (s *Server) ResetPasswordPage(c *fiber.Ctx) error {
	token := c.Params("token")
	if _, err := s.reset.Validate(c.UserContext(), token); err != nil {
		return err
	}
	return s.render(c, "reset_password", fiber.Map{"Token": token, "Message": ""})
}

// ResetPassword handles POST /reset-password/:token
// @Summary Set a new password
// @Description Consumes the token and signs the applicant out of every session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param token path string true "Reset token"
// @Param password formData string true "New password"
// @Param confirm_password formData string true "New password again"
// @Success 302 {string} string "Redirect to /login"
// @Failure 400 {string} string "Invalid or expired token"
// @Router /reset-password/{token} [post]
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	err := s.reset.Complete(c.UserContext(), token, c.FormValue("password"), c.FormValue("confirm_password"))
	switch {
	case err == nil:
		return redirectWithFlash(c, middleware.LoginPath, flashPasswordChanged)
	case errors.Is(err, service.ErrInvalidResetToken):
		return err
	case models.IsCode(err, models.CodeValidation):
		var appErr *models.AppError
		errors.As(err, &appErr)
		return s.render(c, "reset_password", fiber.Map{"Token": token, "Message": appErr.Message})
	default:
		return err
	}
}
