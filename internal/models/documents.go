package models

// Statements holds the free-text statements of page 7.
type Statements struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	ResearchStatement string `gorm:"type:text" json:"research_statement"`
	TeachingStatement string `gorm:"type:text" json:"teaching_statement"`
	RelIn             string `gorm:"column:rel_in;type:text" json:"rel_in"`
	ProfServ          string `gorm:"type:text" json:"prof_serv"`
	JourDetails       string `gorm:"type:text" json:"jour_details"`
	ConfDetails       string `gorm:"type:text" json:"conf_details"`
}

func (Statements) TableName() string {
	return "page_7"
}

// Documents records the stored paths of the page 8 uploads. A nil path means
// the field was not submitted.
type Documents struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	PhdPath      *string `gorm:"size:255" json:"phd_path"`
	PgPath       *string `gorm:"size:255" json:"pg_path"`
	UgPath       *string `gorm:"size:255" json:"ug_path"`
	TwPath       *string `gorm:"size:255" json:"tw_path"`
	TePath       *string `gorm:"size:255" json:"te_path"`
	PayPath      *string `gorm:"size:255" json:"pay_path"`
	NocPath      *string `gorm:"size:255" json:"noc_path"`
	PostPath     *string `gorm:"size:255" json:"post_path"`
	MiscPath     *string `gorm:"size:255" json:"misc_path"`
	SignPath     *string `gorm:"size:255" json:"sign_path"`
	ResearchPath *string `gorm:"size:255" json:"research_path"`
}

func (Documents) TableName() string {
	return "page_8"
}

// Referee is one referee contact submitted with the uploads.
type Referee struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	Email07            string `gorm:"column:email07;size:255;not null" json:"email07"`
	RefName            string `gorm:"size:255;not null" json:"ref_name"`
	Phone              string `gorm:"size:255;not null" json:"phone"`
	Position           string `gorm:"size:255;not null" json:"position"`
	AssociationReferee string `gorm:"size:255;not null" json:"association_referee"`
	Org                string `gorm:"size:255;not null" json:"org"`
}

func (Referee) TableName() string {
	return "datapage"
}
