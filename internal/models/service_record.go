package models

// Membership of a professional society (page 5).
type Membership struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	ProfessionalSocietyName string `gorm:"size:255" json:"professional_society_name"`
	MembershipStatus        string `gorm:"size:255" json:"membership_status"`
}

func (Membership) TableName() string {
	return "membership"
}

type Training struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	TrainingType         string `gorm:"size:255" json:"training_type"`
	TrainingOrganization string `gorm:"size:255" json:"training_organization"`
	TrainingYear         string `gorm:"size:255" json:"training_year"`
	TrainingDuration     string `gorm:"size:255" json:"training_duration"`
}

func (Training) TableName() string {
	return "training"
}

type Award struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	AwardName string `gorm:"size:255" json:"award_name"`
	AwardedBy string `gorm:"size:255" json:"awarded_by"`
	AwardYear string `gorm:"size:255" json:"award_year"`
}

func (Award) TableName() string {
	return "awards"
}

type SponsoredProject struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	SponsoringAgency string `gorm:"size:255" json:"sponsoring_agency"`
	ProjectTitle     string `gorm:"size:255" json:"project_title"`
	SanctionedAmount string `gorm:"size:255" json:"sanctioned_amount"`
	ProjectPeriod    string `gorm:"size:255" json:"project_period"`
	ProjectRole      string `gorm:"size:255" json:"project_role"`
	ProjectStatus    string `gorm:"size:255" json:"project_status"`
}

func (SponsoredProject) TableName() string {
	return "sponsoredprojects"
}

type ConsultancyProject struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	ConsultancyOrganization string `gorm:"size:255" json:"consultancy_organization"`
	ConsultancyTitle        string `gorm:"size:255" json:"consultancy_title"`
	GrantAmount             string `gorm:"size:255" json:"grant_amount"`
	ConsultancyPeriod       string `gorm:"size:255" json:"consultancy_period"`
	ConsultancyRole         string `gorm:"size:255" json:"consultancy_role"`
	ConsultancyStatus       string `gorm:"size:255" json:"consultancy_status"`
}

func (ConsultancyProject) TableName() string {
	return "consultancyprojects"
}
