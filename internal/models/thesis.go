package models

// PhdThesis is a doctoral thesis the applicant supervised (page 6).
type PhdThesis struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	PhdName   string `gorm:"size:255" json:"phd_name"`
	PhdTitle  string `gorm:"size:255" json:"phd_title"`
	PhdRole   string `gorm:"size:255" json:"phd_role"`
	PhdStatus string `gorm:"size:255" json:"phd_status"`
	PhdYear   string `gorm:"size:255" json:"phd_year"`
}

func (PhdThesis) TableName() string {
	return "phd_thesis"
}

type PgThesis struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	PgName   string `gorm:"size:255" json:"pg_name"`
	PgTitle  string `gorm:"size:255" json:"pg_title"`
	PgRole   string `gorm:"size:255" json:"pg_role"`
	PgStatus string `gorm:"size:255" json:"pg_status"`
	PgYear   string `gorm:"size:255" json:"pg_year"`
}

func (PgThesis) TableName() string {
	return "pg_thesis"
}

type UgThesis struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	UgName   string `gorm:"size:255" json:"ug_name"`
	UgTitle  string `gorm:"size:255" json:"ug_title"`
	UgRole   string `gorm:"size:255" json:"ug_role"`
	UgStatus string `gorm:"size:255" json:"ug_status"`
	UgYear   string `gorm:"size:255" json:"ug_year"`
}

func (UgThesis) TableName() string {
	return "ug_thesis"
}
