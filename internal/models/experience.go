package models

// PresentEmployment is the applicant's current position (page 3).
type PresentEmployment struct {
	ID uint `gorm:"primaryKey" json:"id" form:"-"`
	Owner
	PresEmpPosition string `gorm:"size:255" json:"pres_emp_position" form:"pres_emp_position"`
	PresEmpEmployer string `gorm:"size:255" json:"pres_emp_employer" form:"pres_emp_employer"`
	PresStatus      string `gorm:"size:255" json:"pres_status" form:"pres_status"`
	PresEmpDoj      string `gorm:"size:255" json:"pres_emp_doj" form:"pres_emp_doj"`
	PresEmpDol      string `gorm:"size:255" json:"pres_emp_dol" form:"pres_emp_dol"`
	PresEmpDuration string `gorm:"size:255" json:"pres_emp_duration" form:"pres_emp_duration"`
}

func (PresentEmployment) TableName() string {
	return "presentemployment"
}

type EmploymentHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	ExpPosition string `gorm:"size:255" json:"exp_position"`
	ExpEmployer string `gorm:"size:255" json:"exp_employer"`
	ExpDoj      string `gorm:"size:255" json:"exp_doj"`
	ExpDol      string `gorm:"size:255" json:"exp_dol"`
	ExpDuration string `gorm:"size:255" json:"exp_duration"`
}

func (EmploymentHistory) TableName() string {
	return "employmenthistory"
}

type TeachingExp struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	TExpPosition  string `gorm:"column:t_exp_position;size:255" json:"t_exp_position"`
	TExpEmployer  string `gorm:"column:t_exp_employer;size:255" json:"t_exp_employer"`
	TExpCourse    string `gorm:"column:t_exp_course;size:255" json:"t_exp_course"`
	TUgpg         string `gorm:"column:t_ugpg;size:255" json:"t_ugpg"`
	TNoofstudents string `gorm:"column:t_noofstudents;size:255" json:"t_noofstudents"`
	TDoj          string `gorm:"column:t_doj;size:255" json:"t_doj"`
	TDol          string `gorm:"column:t_dol;size:255" json:"t_dol"`
	TDuration     string `gorm:"column:t_duration;size:255" json:"t_duration"`
}

func (TeachingExp) TableName() string {
	return "teachingexp"
}

type ResearchExp struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	RExpPosition   string `gorm:"column:r_exp_position;size:255" json:"r_exp_position"`
	RExpInstitute  string `gorm:"column:r_exp_institute;size:255" json:"r_exp_institute"`
	RExpSupervisor string `gorm:"column:r_exp_supervisor;size:255" json:"r_exp_supervisor"`
	RExpDoj        string `gorm:"column:r_exp_doj;size:255" json:"r_exp_doj"`
	RExpDol        string `gorm:"column:r_exp_dol;size:255" json:"r_exp_dol"`
	RExpDuration   string `gorm:"column:r_exp_duration;size:255" json:"r_exp_duration"`
}

func (ResearchExp) TableName() string {
	return "researchexp"
}

type IndustrialExp struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	IndExpOrganization string `gorm:"size:255" json:"ind_exp_organization"`
	IndExpWorkprofile  string `gorm:"column:ind_exp_workprofile;size:255" json:"ind_exp_workprofile"`
	IndExpDoj          string `gorm:"size:255" json:"ind_exp_doj"`
	IndExpDol          string `gorm:"size:255" json:"ind_exp_dol"`
	IndExpDuration     string `gorm:"size:255" json:"ind_exp_duration"`
}

func (IndustrialExp) TableName() string {
	return "industrialexp"
}

// AosAor records areas of specialisation and research.
type AosAor struct {
	ID uint `gorm:"primaryKey" json:"id" form:"-"`
	Owner
	AreaSpl  string `gorm:"size:255" json:"area_spl" form:"area_spl"`
	AreaRese string `gorm:"size:255" json:"area_rese" form:"area_rese"`
}

func (AosAor) TableName() string {
	return "aos_aor"
}
