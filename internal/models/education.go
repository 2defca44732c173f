package models

// EducationalDetails is the single education record of an applicant (page 2).
type EducationalDetails struct {
	ID uint `gorm:"primaryKey" json:"id" form:"-"`
	Owner
	CollegePhd     string `gorm:"size:255" json:"college_phd" form:"college_phd"`
	StreamPhd      string `gorm:"size:255" json:"stream_phd" form:"stream_phd"`
	SupervisorPhd  string `gorm:"size:255" json:"supervisor_phd" form:"supervisor_phd"`
	YojPhd         string `gorm:"size:255" json:"yoj_phd" form:"yoj_phd"`
	DodPhd         string `gorm:"size:255" json:"dod_phd" form:"dod_phd"`
	DoaPhd         string `gorm:"size:255" json:"doa_phd" form:"doa_phd"`
	PhdTitle       string `gorm:"size:255" json:"phd_title" form:"phd_title"`
	PgDegree       string `gorm:"size:255" json:"pg_degree" form:"pg_degree"`
	PgCollege      string `gorm:"size:255" json:"pg_college" form:"pg_college"`
	PgStream       string `gorm:"size:255" json:"pg_stream" form:"pg_stream"`
	PgYoj          string `gorm:"size:255" json:"pg_yoj" form:"pg_yoj"`
	PgYoc          string `gorm:"size:255" json:"pg_yoc" form:"pg_yoc"`
	PgDuration     string `gorm:"size:255" json:"pg_duration" form:"pg_duration"`
	PgCgpa         string `gorm:"size:255" json:"pg_cgpa" form:"pg_cgpa"`
	PgDivision     string `gorm:"size:255" json:"pg_division" form:"pg_division"`
	UgDegree       string `gorm:"size:255" json:"ug_degree" form:"ug_degree"`
	UgCollege      string `gorm:"size:255" json:"ug_college" form:"ug_college"`
	UgStream       string `gorm:"size:255" json:"ug_stream" form:"ug_stream"`
	UgYoj          string `gorm:"size:255" json:"ug_yoj" form:"ug_yoj"`
	UgYoc          string `gorm:"size:255" json:"ug_yoc" form:"ug_yoc"`
	UgDuration     string `gorm:"size:255" json:"ug_duration" form:"ug_duration"`
	UgCgpa         string `gorm:"size:255" json:"ug_cgpa" form:"ug_cgpa"`
	UgDivision     string `gorm:"size:255" json:"ug_division" form:"ug_division"`
	HscSchool      string `gorm:"size:255" json:"hsc_school" form:"hsc_school"`
	HscPassingyear string `gorm:"column:hsc_passingyear;size:255" json:"hsc_passingyear" form:"hsc_passingyear"`
	HscPercentage  string `gorm:"size:255" json:"hsc_percentage" form:"hsc_percentage"`
	HscDivision    string `gorm:"size:255" json:"hsc_division" form:"hsc_division"`
	SscSchool      string `gorm:"size:255" json:"ssc_school" form:"ssc_school"`
	SscPassingyear string `gorm:"column:ssc_passingyear;size:255" json:"ssc_passingyear" form:"ssc_passingyear"`
	SscPercentage  string `gorm:"size:255" json:"ssc_percentage" form:"ssc_percentage"`
	SscDivision    string `gorm:"size:255" json:"ssc_division" form:"ssc_division"`

	Additional []EduAdditionalDetails `gorm:"foreignKey:EducationaldetailsID;constraint:OnDelete:CASCADE" json:"additional,omitempty" form:"-"`
}

func (EducationalDetails) TableName() string {
	return "educationaldetails"
}

// EduAdditionalDetails is an extra qualification attached to the education record.
type EduAdditionalDetails struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	EducationaldetailsID uint   `gorm:"column:educationaldetails_id;index" json:"educationaldetails_id"`
	Degree               string `gorm:"size:255" json:"degree"`
	College              string `gorm:"size:255" json:"college"`
	Subjects             string `gorm:"size:255" json:"subjects"`
	Yoj                  string `gorm:"size:255" json:"yoj"`
	Yog                  string `gorm:"size:255" json:"yog"`
	Duration             string `gorm:"size:255" json:"duration"`
	Perce                string `gorm:"size:255" json:"perce"`
	Division             string `gorm:"size:255" json:"division"`
}

func (EduAdditionalDetails) TableName() string {
	return "edu_additionaldetails"
}
