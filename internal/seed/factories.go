// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded applicant.
const DefaultPassword = "faculty2024"

var (
	categories  = []string{"GEN", "OBC", "SC", "ST", "EWS", "PwD"}
	departments = []string{"Computer Science", "Electrical Engineering", "Mechanical Engineering", "Physics", "Chemistry", "Mathematics", "Humanities"}
	posts       = []string{"Assistant Professor Grade I", "Assistant Professor Grade II", "Associate Professor", "Professor"}
	divisions   = []string{"First", "First with Distinction", "Second"}
	statuses    = []string{"Ongoing", "Completed", "Submitted"}
)

// Factory builds applicants and their applications and persists them.
type Factory struct {
	db     *gorm.DB
	apps   repository.ApplicationRepository
	faker  *gofakeit.Faker
	opts   FactoryOptions
	hashed string
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// FactoryOptions tune how much work the factory does per applicant.
type FactoryOptions struct {
	// Seed makes the generated data reproducible. Zero picks a random seed.
	Seed int64
	// SkipBcrypt stores a cheap hash, for tests.
	SkipBcrypt bool
	// DryRun logs what would be written without touching the database.
	DryRun bool
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts FactoryOptions) (*Factory, error) {
	cost := bcrypt.DefaultCost
	if opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return &Factory{
		db:     db,
		apps:   repository.NewApplicationRepository(db),
		faker:  gofakeit.New(opts.Seed),
		opts:   opts,
		hashed: string(hashed),
		nextID: 1000,
	}, nil
}

func (f *Factory) pick(options []string) string {
	return options[f.faker.Number(0, len(options)-1)]
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *Factory) year(min, max int) string {
	return fmt.Sprint(f.faker.Number(min, max))
}

// CreateApplicant persists an account and its signup profile.
// Optional override functions may modify the generated profile before saving.
func (f *Factory) CreateApplicant(overrides ...func(*models.User, *models.Profile)) (*models.User, error) {
	first, last := f.faker.FirstName(), f.faker.LastName()
	user := &models.User{
		Email:    strings.ToLower(fmt.Sprintf("%s.%s.%d@example.edu", first, last, f.faker.Number(100, 999))),
		Password: f.hashed,
	}
	profile := &models.Profile{FirstName: first, LastName: last, Category: f.pick(categories)}

	for _, override := range overrides {
		override(user, profile)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateApplicant: %s (%s %s)", user.Email, profile.FirstName, profile.LastName)
		return user, nil
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.SetOwner(user.ID, user.Email)
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FillApplication writes every form page for user the way a completed
// application would leave them. Document paths stay empty.
func (f *Factory) FillApplication(ctx context.Context, user *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] FillApplication: %s", user.Email)
		return nil
	}
	owner := models.Owner{UserID: user.ID, Email: user.Email}

	var profile models.Profile
	if err := f.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	app, personal := f.personal(profile)
	if err := f.apps.SavePersonal(ctx, owner, app, personal); err != nil {
		return err
	}
	if err := f.apps.SaveEducation(ctx, owner, f.education()); err != nil {
		return err
	}
	if err := f.apps.SaveExperience(ctx, owner, f.experience()); err != nil {
		return err
	}
	if err := f.apps.SavePublications(ctx, owner, f.publications(profile)); err != nil {
		return err
	}
	if err := f.apps.SaveService(ctx, owner, f.service()); err != nil {
		return err
	}
	if err := f.apps.SaveTheses(ctx, owner, f.theses()); err != nil {
		return err
	}
	if err := f.apps.SaveStatements(ctx, owner, f.statements()); err != nil {
		return err
	}
	return f.apps.SaveDocuments(ctx, owner, &models.Documents{}, f.referees())
}

func (f *Factory) personal(p models.Profile) (*models.ApplicationDetails, *models.PersonalDetails) {
	app := &models.ApplicationDetails{
		AdvNum: fmt.Sprintf("ADV-%02d/%s", f.faker.Number(1, 20), f.year(2024, 2026)),
		Doa:    f.faker.Date().Format("2006-01-02"),
		AppNum: fmt.Sprintf("APP%06d", f.faker.Number(1, 999999)),
		Post:   f.pick(posts),
		Dept:   f.pick(departments),
	}
	address := f.faker.Address()
	personal := &models.PersonalDetails{
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		Nationality:           "Indian",
		Dob:                   f.faker.DateRange(mustDate("1965-01-01"), mustDate("1995-12-31")).Format("2006-01-02"),
		Gender:                f.faker.Gender(),
		Maritalstatus:         f.pick([]string{"Single", "Married"}),
		Category:              p.Category,
		Idproof:               f.pick([]string{"Passport", "Aadhaar", "Voter ID"}),
		FatherName:            f.faker.Name(),
		Correspondenceaddress: address.Address,
		Permanentaddress:      address.Address,
		Mobile:                f.faker.Phone(),
		Altemail:              f.faker.Email(),
	}
	return app, personal
}

func (f *Factory) education() *models.EducationalDetails {
	edu := &models.EducationalDetails{
		CollegePhd:     f.faker.Company() + " Institute of Technology",
		StreamPhd:      f.pick(departments),
		SupervisorPhd:  "Prof. " + f.faker.Name(),
		YojPhd:         f.year(2008, 2016),
		DodPhd:         f.year(2013, 2021),
		PhdTitle:       f.faker.Sentence(8),
		PgDegree:       f.pick([]string{"M.Tech", "M.Sc", "M.E."}),
		PgCollege:      f.faker.Company() + " University",
		PgYoc:          f.year(2006, 2014),
		PgCgpa:         fmt.Sprintf("%.2f", f.faker.Float64Range(7, 10)),
		PgDivision:     f.pick(divisions),
		UgDegree:       f.pick([]string{"B.Tech", "B.Sc", "B.E."}),
		UgCollege:      f.faker.Company() + " College",
		UgYoc:          f.year(2003, 2012),
		UgCgpa:         fmt.Sprintf("%.2f", f.faker.Float64Range(6.5, 10)),
		UgDivision:     f.pick(divisions),
		HscSchool:      f.faker.City() + " Higher Secondary School",
		HscPassingyear: f.year(1999, 2008),
		HscPercentage:  fmt.Sprintf("%.1f", f.faker.Float64Range(60, 98)),
		HscDivision:    f.pick(divisions),
		SscSchool:      f.faker.City() + " High School",
		SscPassingyear: f.year(1997, 2006),
		SscPercentage:  fmt.Sprintf("%.1f", f.faker.Float64Range(60, 98)),
		SscDivision:    f.pick(divisions),
	}
	for i := f.faker.Number(0, 2); i > 0; i-- {
		edu.Additional = append(edu.Additional, models.EduAdditionalDetails{
			Degree:   f.pick([]string{"M.Phil", "PG Diploma", "MBA"}),
			College:  f.faker.Company() + " University",
			Subjects: f.faker.BuzzWord(),
			Yoj:      f.year(2005, 2012),
			Yog:      f.year(2013, 2016),
			Duration: fmt.Sprint(f.faker.Number(1, 2)),
			Perce:    fmt.Sprintf("%.1f", f.faker.Float64Range(60, 95)),
			Division: f.pick(divisions),
		})
	}
	return edu
}

func (f *Factory) experience() *models.ExperienceRecord {
	rec := &models.ExperienceRecord{
		Present: []models.PresentEmployment{{
			PresEmpPosition: f.pick([]string{"Assistant Professor", "Postdoctoral Fellow", "Scientist"}),
			PresEmpEmployer: f.faker.Company(),
			PresStatus:      f.pick([]string{"Regular", "Contract"}),
			PresEmpDoj:      f.year(2018, 2024),
		}},
		Areas: []models.AosAor{{AreaSpl: f.faker.BuzzWord(), AreaRese: f.faker.Sentence(6)}},
	}
	for i := f.faker.Number(1, 3); i > 0; i-- {
		rec.History = append(rec.History, models.EmploymentHistory{
			ExpPosition: f.faker.JobTitle(), ExpEmployer: f.faker.Company(),
			ExpDoj: f.year(2010, 2015), ExpDol: f.year(2016, 2020), ExpDuration: fmt.Sprint(f.faker.Number(1, 5)),
		})
	}
	rec.Teaching = append(rec.Teaching, models.TeachingExp{
		TExpPosition: "Lecturer", TExpEmployer: f.faker.Company() + " University",
		TExpCourse: f.faker.BuzzWord(), TUgpg: f.pick([]string{"UG", "PG"}),
		TNoofstudents: fmt.Sprint(f.faker.Number(20, 120)), TDoj: f.year(2014, 2018), TDol: f.year(2019, 2022),
		TDuration: fmt.Sprint(f.faker.Number(1, 4)),
	})
	rec.Research = append(rec.Research, models.ResearchExp{
		RExpPosition: "Research Associate", RExpInstitute: f.faker.Company() + " Labs",
		RExpSupervisor: "Dr. " + f.faker.Name(), RExpDoj: f.year(2015, 2018), RExpDol: f.year(2018, 2020),
		RExpDuration: fmt.Sprint(f.faker.Number(1, 3)),
	})
	return rec
}

func (f *Factory) publications(p models.Profile) *models.PublicationRecord {
	rec := &models.PublicationRecord{
		Summary: []models.Publications{{
			SummaryJournalInter: fmt.Sprint(f.faker.Number(0, 30)),
			SummaryJournal:      fmt.Sprint(f.faker.Number(0, 10)),
			SummaryConfInter:    fmt.Sprint(f.faker.Number(0, 25)),
			SummaryConfNational: fmt.Sprint(f.faker.Number(0, 10)),
			PatentPublish:       fmt.Sprint(f.faker.Number(0, 3)),
			SummaryBook:         fmt.Sprint(f.faker.Number(0, 2)),
			SummaryBookChapter:  fmt.Sprint(f.faker.Number(0, 4)),
		}},
		Links: []models.GoogleLink{{Googlelink: "https://scholar.google.com/citations?user=" + f.faker.LetterN(12)}},
	}
	author := p.FirstName + " " + p.LastName
	for i := f.faker.Number(1, 10); i > 0; i-- {
		rec.Top = append(rec.Top, models.TopPublication{
			Author:  author + ", " + f.faker.Name(),
			Title:   f.faker.Sentence(9),
			Journal: f.faker.Company() + " Journal",
			Year:    f.year(2012, 2026),
			Impact:  fmt.Sprintf("%.2f", f.faker.Float64Range(0.5, 12)),
			Doi:     fmt.Sprintf("10.%d/%s", f.faker.Number(1000, 9999), f.faker.LetterN(8)),
			Status:  f.pick([]string{"Published", "Accepted"}),
		})
	}
	if f.faker.Bool() {
		rec.Patents = append(rec.Patents, models.Patent{
			Pauthor: author, Ptitle: f.faker.Sentence(6), PCountry: "India",
			PNumber: fmt.Sprint(f.faker.Number(100000, 999999)), PyearFiled: f.year(2015, 2020),
			PyearPublished: f.year(2020, 2023), PyearIssued: f.year(2023, 2026),
		})
	}
	if f.faker.Bool() {
		rec.Books = append(rec.Books, models.Book{
			Bauthor: author, Btitle: f.faker.Sentence(5), Byear: f.year(2015, 2025), Bisbn: f.faker.Numerify("978-##########"),
		})
	}
	return rec
}

func (f *Factory) service() *models.ServiceRecord {
	rec := &models.ServiceRecord{
		Memberships: []models.Membership{{
			ProfessionalSocietyName: f.pick([]string{"IEEE", "ACM", "American Physical Society", "Indian Science Congress"}),
			MembershipStatus:        f.pick([]string{"Life member", "Senior member", "Member"}),
		}},
	}
	if f.faker.Bool() {
		rec.Awards = append(rec.Awards, models.Award{
			AwardName: f.faker.BuzzWord() + " Award", AwardedBy: f.faker.Company(), AwardYear: f.year(2015, 2026),
		})
	}
	if f.faker.Bool() {
		rec.Sponsored = append(rec.Sponsored, models.SponsoredProject{
			SponsoringAgency: f.pick([]string{"SERB", "DST", "DBT", "CSIR"}), ProjectTitle: f.faker.Sentence(6),
			SanctionedAmount: fmt.Sprint(f.faker.Number(5, 80)) + " lakh", ProjectPeriod: fmt.Sprint(f.faker.Number(1, 3)) + " years",
			ProjectRole: f.pick([]string{"PI", "Co-PI"}), ProjectStatus: f.pick(statuses),
		})
	}
	return rec
}

func (f *Factory) theses() *models.ThesisRecord {
	rec := &models.ThesisRecord{}
	for i := f.faker.Number(0, 2); i > 0; i-- {
		rec.Phd = append(rec.Phd, models.PhdThesis{
			PhdName: f.faker.Name(), PhdTitle: f.faker.Sentence(8), PhdRole: f.pick([]string{"Supervisor", "Co-supervisor"}),
			PhdStatus: f.pick(statuses), PhdYear: f.year(2018, 2026),
		})
	}
	for i := f.faker.Number(0, 3); i > 0; i-- {
		rec.Ug = append(rec.Ug, models.UgThesis{
			UgName: f.faker.Name(), UgTitle: f.faker.Sentence(6), UgRole: "Supervisor",
			UgStatus: f.pick(statuses), UgYear: f.year(2018, 2026),
		})
	}
	return rec
}

func (f *Factory) statements() *models.Statements {
	return &models.Statements{
		ResearchStatement: f.faker.Paragraph(2, 4, 12, "\n"),
		TeachingStatement: f.faker.Paragraph(1, 3, 12, "\n"),
		RelIn:             f.faker.Sentence(12),
		ProfServ:          f.faker.Sentence(10),
	}
}

func (f *Factory) referees() []models.Referee {
	out := make([]models.Referee, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, models.Referee{
			Email07:            f.faker.Email(),
			RefName:            "Prof. " + f.faker.Name(),
			Phone:              f.faker.Phone(),
			Position:           "Professor",
			AssociationReferee: f.pick([]string{"PhD supervisor", "Collaborator", "Head of department"}),
			Org:                f.faker.Company() + " Institute",
		})
	}
	return out
}
