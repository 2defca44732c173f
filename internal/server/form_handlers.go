package server

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/featureflags"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/gofiber/fiber/v2"
)

// refereeSlots is how many referee rows page 8 offers.
const refereeSlots = 3

// thesisLevel is one supervision table on page 6.
type thesisLevel struct {
	Title  string
	Prefix string
}

var thesisLevels = []thesisLevel{
	{Title: "Ph.D. theses", Prefix: "phd"},
	{Title: "PG theses", Prefix: "pg"},
	{Title: "UG projects", Prefix: "ug"},
}

var documentLabels = map[string]string{
	"phdCertificate":     "Ph.D. certificate",
	"pgDocuments":        "PG documents",
	"ugDocuments":        "UG documents",
	"twelfthCertificate": "12th certificate",
	"tenthCertificate":   "10th certificate",
	"paySlip":            "Pay slip",
	"nocUndertaking":     "NOC or undertaking",
	"postPhdExperience":  "Post Ph.D. experience certificate",
	"miscCertificate":    "Other certificates",
	"signature":          "Signature",
	"researchPapers":     "Best research papers",
}

// documentLink is one page 8 file input with the current upload, if any.
type documentLink struct {
	Field string
	Label string
	URL   string
}

func documentLinks(docs *models.Documents) []documentLink {
	links := make([]documentLink, 0, len(service.DocumentFields))
	for _, df := range service.DocumentFields {
		links = append(links, documentLink{
			Field: df.Field,
			Label: documentLabels[df.Field],
			URL:   service.FileURL(df.Path(docs)),
		})
	}
	return links
}

func pageParam(c *fiber.Ctx) (int, error) {
	page, err := c.ParamsInt("page")
	if err != nil || page < 1 || page > service.LastPage {
		return 0, fiber.ErrNotFound
	}
	return page, nil
}

// FormPage handles GET /formpages/:page
// @Summary Render an application form page
// @Description Pages 2 to 6 purge the rows they own so the applicant starts them afresh
// @Tags application
// @Produce html
// @Param page path int true "Page number (1-9)"
// @Success 200 {string} string "HTML page"
// @Failure 404 {object} models.ErrorResponse
// @Router /formpages/{page} [get]
func (s *Server) FormPage(c *fiber.Ctx) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	own := owner(c)

	profile, err := s.loadProfile(ctx, own.UserID)
	if err != nil {
		return err
	}
	if err := s.apps.PrepareRender(ctx, page, own.UserID); err != nil {
		return err
	}

	sess := session.From(c)
	data := fiber.Map{
		"FirstName": profile.FirstName,
		"LastName":  profile.LastName,
	}
	switch page {
	case 1:
		var scratch personalScratch
		if !sess.Scratch(scratchPersonal, &scratch) {
			scratch.Personal.FirstName = profile.FirstName
			scratch.Personal.LastName = profile.LastName
			scratch.Personal.Category = profile.Category
		}
		data["Email"] = own.Email
		data["Category"] = profile.Category
		data["Application"] = scratch.Application
		data["Personal"] = scratch.Personal
		data["ImageURL"] = service.FileURL(scratch.Personal.ImagePath)
		data["IDProofURL"] = service.FileURL(scratch.Personal.IdproofImage)
	case 6:
		data["Levels"] = thesisLevels
	case 7:
		var st models.Statements
		sess.Scratch(scratchStatements, &st)
		data["Statements"] = st
	case 8:
		joined, err := s.profileRepo.GetWithDocuments(ctx, own.UserID)
		if err != nil {
			if models.IsCode(err, models.CodeNotFound) {
				return errProfileNotFound
			}
			return err
		}
		slots := make([]int, refereeSlots)
		for i := range slots {
			slots[i] = i + 1
		}
		data["Documents"] = documentLinks(joined.Documents())
		data["RefereeSlots"] = slots
	}
	return s.render(c, fmt.Sprintf("page%d", page), data)
}

// SubmitFormPage handles POST /formpages/:page
// @Summary Save an application form page
// @Description Replaces the applicant's rows for the page in one transaction and moves on
// @Tags application
// @Accept x-www-form-urlencoded,mpfd
// @Param page path int true "Page number (1-9)"
// @Success 302 {string} string "Redirect to the next page, or /printform after page 9"
// @Failure 400 {object} models.ErrorResponse
// @Router /formpages/{page} [post]
func (s *Server) SubmitFormPage(c *fiber.Ctx) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	own := owner(c)

	switch page {
	case 8:
		return c.Redirect("/formpages/9")
	case service.LastPage:
		s.apps.Submit(ctx, own.UserID)
		middleware.Logger.InfoContext(ctx, "application submitted", slog.Uint64("user_id", uint64(own.UserID)))
		return c.Redirect("/printform")
	}

	values, err := formValues(c)
	if err != nil {
		return err
	}

	switch page {
	case 1:
		err = s.savePersonal(c, own, values)
	case 2:
		_, err = s.apps.SaveEducation(ctx, own, values)
	case 3:
		err = s.apps.SaveExperience(ctx, own, values)
	case 4:
		err = s.apps.SavePublications(ctx, own, values)
	case 5:
		err = s.apps.SaveService(ctx, own, values)
	case 6:
		err = s.apps.SaveTheses(ctx, own, values)
	case 7:
		var st *models.Statements
		st, err = s.apps.SaveStatements(ctx, own, values)
		if err == nil {
			logScratchError(c, scratchStatements, session.From(c).SetScratch(scratchStatements, st))
		}
	}
	if err != nil {
		return err
	}
	return c.Redirect(fmt.Sprintf("/formpages/%d", page+1))
}

// savePersonal stores the page 1 uploads and rows. Without a new upload the
// paths saved by an earlier visit are kept.
func (s *Server) savePersonal(c *fiber.Ctx, own models.Owner, values service.FormValues) error {
	ctx := c.UserContext()
	sess := session.From(c)

	var form *multipart.Form
	if isMultipart(c) {
		form, _ = c.MultipartForm()
	}

	var previous personalScratch
	sess.Scratch(scratchPersonal, &previous)
	files := service.PersonalFiles{
		Photo:   previous.Personal.ImagePath,
		IDProof: previous.Personal.IdproofImage,
	}

	photo, err := s.uploads.StoreFirst(ctx, form, "userfile")
	if err != nil {
		return err
	}
	stored := []*service.StoredFile{photo}
	if photo != nil {
		files.Photo = &photo.Name
	}
	idProof, err := s.uploads.StoreFirst(ctx, form, "uploadid")
	if err != nil {
		s.uploads.Remove(ctx, stored)
		return err
	}
	stored = append(stored, idProof)
	if idProof != nil {
		files.IDProof = &idProof.Name
	}

	app, personal, err := s.apps.SavePersonal(ctx, own, values, files)
	if err != nil {
		s.uploads.Remove(ctx, stored)
		return err
	}

	if photo != nil && s.flags.Enabled(featureflags.PhotoThumbnails, own.UserID) {
		if _, err := s.photos.Thumbnail(ctx, photo.Path); err != nil {
			middleware.Logger.WarnContext(ctx, "photo thumbnail failed",
				slog.String("path", photo.Path), slog.String("error", err.Error()))
		}
	}

	logScratchError(c, scratchPersonal, sess.SetScratch(scratchPersonal, personalScratch{
		Application: *app,
		Personal:    *personal,
	}))
	return nil
}

// Upload handles POST /upload
// @Summary Upload documents and referees
// @Description Stores the page 8 files and replaces the applicant's documents and referees in one transaction
// @Tags application
// @Accept mpfd
// @Param phdCertificate formData file false "Ph.D. certificate"
// @Param signature formData file false "Signature"
// @Param ref_name[] formData []string false "Referee names"
// @Param email[] formData []string false "Referee emails"
// @Success 302 {string} string "Redirect to /formpages/9"
// @Failure 400 {object} models.ErrorResponse
// @Router /upload [post]
func (s *Server) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()
	own := owner(c)

	values, err := formValues(c)
	if err != nil {
		return err
	}
	referees, err := service.RefereesFromForm(values)
	if err != nil {
		return err
	}

	var form *multipart.Form
	if isMultipart(c) {
		form, _ = c.MultipartForm()
	}
	docs, stored, err := s.uploads.StoreDocuments(ctx, form)
	if err != nil {
		return err
	}
	if err := s.apps.SaveDocuments(ctx, own, docs, referees); err != nil {
		s.uploads.Remove(ctx, stored)
		return err
	}

	if docs.SignPath != nil {
		logScratchError(c, scratchSignature, session.From(c).SetScratch(scratchSignature, *docs.SignPath))
	}
	return c.Redirect("/formpages/9")
}

// UploadedFile handles GET /uploads/:name
// @Summary Download an uploaded file
// @Description Serves a file only to the applicant whose page 1 or page 8 rows reference it, or its photo thumbnail
// @Tags application
// @Param name path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Router /uploads/{name} [get]
func (s *Server) UploadedFile(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" || strings.HasPrefix(name, ".") || filepath.Base(name) != name {
		return fiber.ErrNotFound
	}

	names, err := s.profileRepo.UploadNames(c.UserContext(), owner(c).UserID)
	if err != nil {
		return err
	}
	owned := slices.ContainsFunc(names, func(stored string) bool {
		stored = filepath.Base(stored)
		return stored == name || service.ThumbnailPath(stored) == name
	})
	if !owned {
		return fiber.ErrNotFound
	}
	c.Set(fiber.HeaderCacheControl, "private, no-store")
	return c.SendFile(filepath.Join(s.uploads.Dir(), name))
}

// PrintForm handles GET /printform
// @Summary Application summary
// @Description Renders every section of the application, or returns it as JSON
// @Tags application
// @Produce html,json
// @Success 200 {object} models.ApplicationSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /printform [get]
func (s *Server) PrintForm(c *fiber.Ctx) error {
	own := owner(c)
	summary, err := s.summary.Get(c.UserContext(), own.UserID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return errProfileNotFound
		}
		return err
	}

	if wantsJSON(c) {
		return c.JSON(summary)
	}
	return s.render(c, "printform", fiber.Map{
		"FirstName": summary.Profile.FirstName,
		"LastName":  summary.Profile.LastName,
		"Summary":   summary,
	})
}
