package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Session scratch keys.
const (
	scratchPersonal   = "page1"
	scratchStatements = "page7"
	scratchSignature  = "signature"
)

// errProfileNotFound is shown when a signed-in user has no profile row.
var errProfileNotFound = &models.AppError{Code: models.CodeNotFound, Message: "Profile not found"}

// personalScratch is the page 1 copy kept in the session to refill the form.
type personalScratch struct {
	Application models.ApplicationDetails `json:"application"`
	Personal    models.PersonalDetails    `json:"personal"`
}

// render executes a page template, adding the queued flash messages.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = session.From(c).Flashes()
	return c.Render(name, data)
}

// redirectWithFlash queues msg for the next page and redirects to path.
func redirectWithFlash(c *fiber.Ctx, path, msg string) error {
	session.From(c).AddFlash(msg)
	return c.Redirect(path)
}

// owner returns the row owner for the signed-in user.
func owner(c *fiber.Ctx) models.Owner {
	u := middleware.CurrentUser(c)
	if u == nil {
		return models.Owner{}
	}
	return models.Owner{UserID: u.ID, Email: u.Email}
}

// loadProfile fetches the signed-in user's profile.
func (s *Server) loadProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, errProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// formValues decodes the request body, multipart or urlencoded, into FormValues.
func formValues(c *fiber.Ctx) (service.FormValues, error) {
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, models.NewValidationError("Malformed form submission")
		}
		return service.FormValues(form.Value), nil
	}

	values := service.FormValues{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})
	return values, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// logScratchError records a session scratch write that could not be encoded.
func logScratchError(c *fiber.Ctx, key string, err error) {
	if err == nil {
		return
	}
	middleware.Logger.WarnContext(c.UserContext(), "failed to store session scratch",
		slog.String("key", key), slog.String("error", err.Error()))
}
