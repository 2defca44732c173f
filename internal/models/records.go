package models

// ExperienceRecord is everything page 3 writes.
type ExperienceRecord struct {
	Present    []PresentEmployment `json:"present_employment"`
	History    []EmploymentHistory `json:"employment_history"`
	Teaching   []TeachingExp       `json:"teaching"`
	Research   []ResearchExp       `json:"research"`
	Industrial []IndustrialExp     `json:"industrial"`
	Areas      []AosAor            `json:"areas"`
}

// PublicationRecord is everything page 4 writes.
type PublicationRecord struct {
	Summary  []Publications   `json:"summary"`
	Top      []TopPublication `json:"top_publications"`
	Patents  []Patent         `json:"patents"`
	Books    []Book           `json:"books"`
	Chapters []BookChapter    `json:"book_chapters"`
	Links    []GoogleLink     `json:"google_links"`
}

// ServiceRecord is everything page 5 writes.
type ServiceRecord struct {
	Memberships []Membership         `json:"memberships"`
	Trainings   []Training           `json:"trainings"`
	Awards      []Award              `json:"awards"`
	Sponsored   []SponsoredProject   `json:"sponsored_projects"`
	Consultancy []ConsultancyProject `json:"consultancy_projects"`
}

// ThesisRecord is everything page 6 writes.
type ThesisRecord struct {
	Phd []PhdThesis `json:"phd"`
	Pg  []PgThesis  `json:"pg"`
	Ug  []UgThesis  `json:"ug"`
}

// ApplicationSummary is the whole application of one applicant, as shown on
// the print page and exported by the admin tool.
type ApplicationSummary struct {
	Profile      Profile              `json:"profile"`
	Personal     []PersonalDetails    `json:"personal_details"`
	Application  []ApplicationDetails `json:"application_details"`
	Documents    []Documents          `json:"documents"`
	Referees     []Referee            `json:"referees"`
	Education    []EducationalDetails `json:"education"`
	Experience   ExperienceRecord     `json:"experience"`
	Publications PublicationRecord    `json:"publications"`
	Service      ServiceRecord        `json:"service"`
	Theses       ThesisRecord         `json:"theses"`
	Statements   []Statements         `json:"statements"`
}

// ProfileDocuments is the profile joined with its uploaded document paths.
// Every path is empty when nothing was uploaded.
type ProfileDocuments struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	PhdPath      *string `json:"phd_path"`
	PgPath       *string `json:"pg_path"`
	UgPath       *string `json:"ug_path"`
	TwPath       *string `json:"tw_path"`
	TePath       *string `json:"te_path"`
	PayPath      *string `json:"pay_path"`
	NocPath      *string `json:"noc_path"`
	PostPath     *string `json:"post_path"`
	MiscPath     *string `json:"misc_path"`
	SignPath     *string `json:"sign_path"`
	ResearchPath *string `json:"research_path"`
}

// Documents copies the document paths into a page_8 row.
func (p *ProfileDocuments) Documents() *Documents {
	return &Documents{
		PhdPath: p.PhdPath, PgPath: p.PgPath, UgPath: p.UgPath, TwPath: p.TwPath, TePath: p.TePath,
		PayPath: p.PayPath, NocPath: p.NocPath, PostPath: p.PostPath, MiscPath: p.MiscPath,
		SignPath: p.SignPath, ResearchPath: p.ResearchPath,
	}
}
