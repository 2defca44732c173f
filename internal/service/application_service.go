package service

import (
	"context"
	"log/slog"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/notifications"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
)

// Statement editor output is wrapped as "<p>" + text + "</p>\r\n".
const (
	editorPrefixLen = 3
	editorSuffixLen = 6
)

// LastPage is the review page; submitting it completes the application.
const LastPage = 9

// ApplicationService turns submitted form pages into rows.
type ApplicationService struct {
	apps   repository.ApplicationRepository
	events notifications.Publisher
}

func NewApplicationService(apps repository.ApplicationRepository, events notifications.Publisher) *ApplicationService {
	return &ApplicationService{apps: apps, events: events}
}

// PersonalFiles are the stored paths of the page 1 uploads.
type PersonalFiles struct {
	Photo   *string
	IDProof *string
}

// PrepareRender purges the rows page owns so the applicant starts it afresh.
func (s *ApplicationService) PrepareRender(ctx context.Context, page int, userID uint) error {
	if !repository.PurgesOnRender(page) {
		return nil
	}
	if err := s.apps.PurgePage(ctx, page, userID); err != nil {
		return err
	}
	observability.PagePurges.WithLabelValues(observability.PageLabel(page)).Inc()
	return nil
}

// finish records the outcome of a page submission and announces successes.
func (s *ApplicationService) finish(ctx context.Context, page int, userID uint, err error) error {
	outcome := observability.OutcomeOf(err)
	if models.IsCode(err, models.CodeValidation) {
		outcome = observability.OutcomeInvalid
	}
	observability.FormSubmissions.WithLabelValues(observability.PageLabel(page), outcome).Inc()
	if err != nil {
		return err
	}
	s.publish(ctx, notifications.Event{Type: notifications.EventPageSaved, UserID: userID, Page: page})
	return nil
}

func (s *ApplicationService) publish(ctx context.Context, ev notifications.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish application event",
			slog.String("event", ev.Type), slog.String("error", err.Error()))
	}
}

// SavePersonal stores page 1.
func (s *ApplicationService) SavePersonal(ctx context.Context, owner models.Owner, values FormValues, files PersonalFiles) (*models.ApplicationDetails, *models.PersonalDetails, error) {
	app := &models.ApplicationDetails{}
	values.BindPrefixed("applicationdetails", app)
	personal := &models.PersonalDetails{}
	values.BindPrefixed("personaldetails", personal)
	personal.ImagePath = files.Photo
	personal.IdproofImage = files.IDProof

	err := s.apps.SavePersonal(ctx, owner, app, personal)
	if err := s.finish(ctx, 1, owner.UserID, err); err != nil {
		return nil, nil, err
	}
	return app, personal, nil
}

// SaveEducation stores page 2.
func (s *ApplicationService) SaveEducation(ctx context.Context, owner models.Owner, values FormValues) (*models.EducationalDetails, error) {
	edu, err := educationFromForm(values)
	if err == nil {
		err = s.apps.SaveEducation(ctx, owner, edu)
	}
	if err := s.finish(ctx, 2, owner.UserID, err); err != nil {
		return nil, err
	}
	return edu, nil
}

func educationFromForm(values FormValues) (*models.EducationalDetails, error) {
	edu := &models.EducationalDetails{}
	values.BindPrefixed("", edu)

	rows, err := values.Group("add_degree", "add_college", "add_subjects", "add_yoj", "add_yog", "add_duration", "add_perce", "add_division")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		edu.Additional = append(edu.Additional, models.EduAdditionalDetails{
			Degree: r[0], College: r[1], Subjects: r[2], Yoj: r[3],
			Yog: r[4], Duration: r[5], Perce: r[6], Division: r[7],
		})
	}
	return edu, nil
}

// SaveExperience stores page 3.
func (s *ApplicationService) SaveExperience(ctx context.Context, owner models.Owner, values FormValues) error {
	rec, err := experienceFromForm(values)
	if err == nil {
		err = s.apps.SaveExperience(ctx, owner, rec)
	}
	return s.finish(ctx, 3, owner.UserID, err)
}

func experienceFromForm(values FormValues) (*models.ExperienceRecord, error) {
	rec := &models.ExperienceRecord{}
	if values.HasPrefix("present") {
		var p models.PresentEmployment
		values.BindPrefixed("present", &p)
		rec.Present = append(rec.Present, p)
	}
	if values.HasPrefix("aos_aor") {
		var a models.AosAor
		values.BindPrefixed("aos_aor", &a)
		rec.Areas = append(rec.Areas, a)
	}

	rows, err := values.Group("exp_position", "exp_employer", "exp_doj", "exp_dol", "exp_duration")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.History = append(rec.History, models.EmploymentHistory{
			ExpPosition: r[0], ExpEmployer: r[1], ExpDoj: r[2], ExpDol: r[3], ExpDuration: r[4],
		})
	}

	rows, err = values.Group("t_exp_position", "t_exp_employer", "t_exp_course", "t_ugpg", "t_noofstudents", "t_doj", "t_dol", "t_duration")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Teaching = append(rec.Teaching, models.TeachingExp{
			TExpPosition: r[0], TExpEmployer: r[1], TExpCourse: r[2], TUgpg: r[3],
			TNoofstudents: r[4], TDoj: r[5], TDol: r[6], TDuration: r[7],
		})
	}

	rows, err = values.Group("r_exp_position", "r_exp_institute", "r_exp_supervisor", "r_exp_doj", "r_exp_dol", "r_exp_duration")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Research = append(rec.Research, models.ResearchExp{
			RExpPosition: r[0], RExpInstitute: r[1], RExpSupervisor: r[2],
			RExpDoj: r[3], RExpDol: r[4], RExpDuration: r[5],
		})
	}

	rows, err = values.Group("ind_exp_organization", "ind_exp_workprofile", "ind_exp_doj", "ind_exp_dol", "ind_exp_duration")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Industrial = append(rec.Industrial, models.IndustrialExp{
			IndExpOrganization: r[0], IndExpWorkprofile: r[1], IndExpDoj: r[2], IndExpDol: r[3], IndExpDuration: r[4],
		})
	}
	return rec, nil
}

// SavePublications stores page 4.
func (s *ApplicationService) SavePublications(ctx context.Context, owner models.Owner, values FormValues) error {
	rec, err := publicationsFromForm(values)
	if err == nil {
		err = s.apps.SavePublications(ctx, owner, rec)
	}
	return s.finish(ctx, 4, owner.UserID, err)
}

func publicationsFromForm(values FormValues) (*models.PublicationRecord, error) {
	rec := &models.PublicationRecord{}
	if values.HasPrefix("one") {
		var p models.Publications
		values.BindPrefixed("one", &p)
		rec.Summary = append(rec.Summary, p)
	}

	rows, err := values.Group("author", "title", "journal", "year", "impact", "doi", "status")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Top = append(rec.Top, models.TopPublication{
			Author: r[0], Title: r[1], Journal: r[2], Year: r[3], Impact: r[4], Doi: r[5], Status: r[6],
		})
	}

	rows, err = values.Group("pauthor", "ptitle", "p_country", "p_number", "pyear_filed", "pyear_published", "pyear_issued")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Patents = append(rec.Patents, models.Patent{
			Pauthor: r[0], Ptitle: r[1], PCountry: r[2], PNumber: r[3],
			PyearFiled: r[4], PyearPublished: r[5], PyearIssued: r[6],
		})
	}

	rows, err = values.Group("bauthor", "btitle", "byear", "bisbn")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Books = append(rec.Books, models.Book{Bauthor: r[0], Btitle: r[1], Byear: r[2], Bisbn: r[3]})
	}

	rows, err = values.Group("bc_author", "bc_title", "bc_year", "bc_isbn")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Chapters = append(rec.Chapters, models.BookChapter{BcAuthor: r[0], BcTitle: r[1], BcYear: r[2], BcIsbn: r[3]})
	}

	if link := values.Get("google_link"); link != "" {
		rec.Links = append(rec.Links, models.GoogleLink{Googlelink: link})
	}
	return rec, nil
}

// SaveService stores page 5.
func (s *ApplicationService) SaveService(ctx context.Context, owner models.Owner, values FormValues) error {
	rec, err := serviceFromForm(values)
	if err == nil {
		err = s.apps.SaveService(ctx, owner, rec)
	}
	return s.finish(ctx, 5, owner.UserID, err)
}

func serviceFromForm(values FormValues) (*models.ServiceRecord, error) {
	rec := &models.ServiceRecord{}

	rows, err := values.Group("professional_society_name", "membership_status")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Memberships = append(rec.Memberships, models.Membership{ProfessionalSocietyName: r[0], MembershipStatus: r[1]})
	}

	rows, err = values.Group("training_type", "training_organization", "training_year", "training_duration")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Trainings = append(rec.Trainings, models.Training{
			TrainingType: r[0], TrainingOrganization: r[1], TrainingYear: r[2], TrainingDuration: r[3],
		})
	}

	rows, err = values.Group("award_name", "awarded_by", "award_year")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Awards = append(rec.Awards, models.Award{AwardName: r[0], AwardedBy: r[1], AwardYear: r[2]})
	}

	rows, err = values.Group("sponsoring_agency", "project_title", "sanctioned_amount", "project_period", "project_role", "project_status")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Sponsored = append(rec.Sponsored, models.SponsoredProject{
			SponsoringAgency: r[0], ProjectTitle: r[1], SanctionedAmount: r[2],
			ProjectPeriod: r[3], ProjectRole: r[4], ProjectStatus: r[5],
		})
	}

	rows, err = values.Group("consultancy_organization", "consultancy_title", "grant_amount", "consultancy_period", "consultancy_role", "consultancy_status")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Consultancy = append(rec.Consultancy, models.ConsultancyProject{
			ConsultancyOrganization: r[0], ConsultancyTitle: r[1], GrantAmount: r[2],
			ConsultancyPeriod: r[3], ConsultancyRole: r[4], ConsultancyStatus: r[5],
		})
	}
	return rec, nil
}

// SaveTheses stores page 6.
func (s *ApplicationService) SaveTheses(ctx context.Context, owner models.Owner, values FormValues) error {
	rec, err := thesesFromForm(values)
	if err == nil {
		err = s.apps.SaveTheses(ctx, owner, rec)
	}
	return s.finish(ctx, 6, owner.UserID, err)
}

func thesesFromForm(values FormValues) (*models.ThesisRecord, error) {
	rec := &models.ThesisRecord{}

	rows, err := values.Group("phd_name", "phd_title", "phd_role", "phd_status", "phd_year")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Phd = append(rec.Phd, models.PhdThesis{PhdName: r[0], PhdTitle: r[1], PhdRole: r[2], PhdStatus: r[3], PhdYear: r[4]})
	}

	rows, err = values.Group("pg_name", "pg_title", "pg_role", "pg_status", "pg_year")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Pg = append(rec.Pg, models.PgThesis{PgName: r[0], PgTitle: r[1], PgRole: r[2], PgStatus: r[3], PgYear: r[4]})
	}

	rows, err = values.Group("ug_name", "ug_title", "ug_role", "ug_status", "ug_year")
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec.Ug = append(rec.Ug, models.UgThesis{UgName: r[0], UgTitle: r[1], UgRole: r[2], UgStatus: r[3], UgYear: r[4]})
	}
	return rec, nil
}

// StripEditorWrapper removes the paragraph wrapper the statement editor adds.
// Values too short to carry the wrapper become empty.
func StripEditorWrapper(s string) string {
	if len(s) < editorPrefixLen+editorSuffixLen {
		return ""
	}
	return s[editorPrefixLen : len(s)-editorSuffixLen]
}

// SaveStatements stores page 7.
func (s *ApplicationService) SaveStatements(ctx context.Context, owner models.Owner, values FormValues) (*models.Statements, error) {
	raw := func(key string) string {
		if vals := values.List(key); len(vals) > 0 {
			return StripEditorWrapper(vals[0])
		}
		return ""
	}
	st := &models.Statements{
		ResearchStatement: raw("research_statement"),
		TeachingStatement: raw("teaching_statement"),
		RelIn:             raw("rel_in"),
		ProfServ:          raw("prof_serv"),
		JourDetails:       raw("jour_details"),
		ConfDetails:       raw("conf_details"),
	}
	err := s.apps.SaveStatements(ctx, owner, st)
	if err := s.finish(ctx, 7, owner.UserID, err); err != nil {
		return nil, err
	}
	return st, nil
}

// RefereesFromForm reads the referee arrays submitted with the uploads.
func RefereesFromForm(values FormValues) ([]models.Referee, error) {
	rows, err := values.Group("ref_name", "email", "phone", "position", "association_referee", "org")
	if err != nil {
		return nil, err
	}
	out := make([]models.Referee, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Referee{
			RefName: r[0], Email07: r[1], Phone: r[2], Position: r[3], AssociationReferee: r[4], Org: r[5],
		})
	}
	return out, nil
}

// SaveDocuments stores the page 8 upload paths and the referees.
func (s *ApplicationService) SaveDocuments(ctx context.Context, owner models.Owner, docs *models.Documents, referees []models.Referee) error {
	err := s.apps.SaveDocuments(ctx, owner, docs, referees)
	return s.finish(ctx, 8, owner.UserID, err)
}

// Submit marks the application complete.
func (s *ApplicationService) Submit(ctx context.Context, userID uint) {
	observability.FormSubmissions.WithLabelValues(observability.PageLabel(LastPage), observability.OutcomeSuccess).Inc()
	observability.ApplicationsSubmitted.Inc()
	s.publish(ctx, notifications.Event{Type: notifications.EventSubmitted, UserID: userID})
}
