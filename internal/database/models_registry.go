package database

import "github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Parents come before children so foreign keys resolve during AutoMigrate.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.ApplicationDetails{},
		&models.PersonalDetails{},
		&models.EducationalDetails{},
		&models.EduAdditionalDetails{},
		&models.PresentEmployment{},
		&models.EmploymentHistory{},
		&models.TeachingExp{},
		&models.ResearchExp{},
		&models.IndustrialExp{},
		&models.AosAor{},
		&models.Publications{},
		&models.TopPublication{},
		&models.Patent{},
		&models.Book{},
		&models.BookChapter{},
		&models.GoogleLink{},
		&models.Membership{},
		&models.Training{},
		&models.Award{},
		&models.SponsoredProject{},
		&models.ConsultancyProject{},
		&models.PhdThesis{},
		&models.PgThesis{},
		&models.UgThesis{},
		&models.Statements{},
		&models.Documents{},
		&models.Referee{},
	}
}
