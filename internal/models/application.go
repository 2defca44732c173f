package models

// ApplicationDetails identifies the advertisement and post applied for (page 1).
type ApplicationDetails struct {
	ID uint `gorm:"primaryKey" json:"id" form:"-"`
	Owner
	AdvNum string `gorm:"size:255;not null" json:"adv_num" form:"adv_num"`
	Doa    string `gorm:"size:255;not null" json:"doa" form:"doa"`
	AppNum string `gorm:"size:255;not null" json:"app_num" form:"app_num"`
	Post   string `gorm:"size:255;not null" json:"post" form:"post"`
	Dept   string `gorm:"size:255;not null" json:"dept" form:"dept"`
}

func (ApplicationDetails) TableName() string {
	return "applicationdetails"
}

// PersonalDetails is the applicant's personal record (page 1).
type PersonalDetails struct {
	ID uint `gorm:"primaryKey" json:"id" form:"-"`
	Owner
	FirstName             string  `gorm:"size:255;not null" json:"first_name" form:"first_name"`
	MiddleName            string  `gorm:"size:255;not null" json:"middle_name" form:"middle_name"`
	LastName              string  `gorm:"size:255;not null" json:"last_name" form:"last_name"`
	Nationality           string  `gorm:"size:255;not null" json:"nationality" form:"nationality"`
	Dob                   string  `gorm:"size:255;not null" json:"dob" form:"dob"`
	Gender                string  `gorm:"size:255;not null" json:"gender" form:"gender"`
	Maritalstatus         string  `gorm:"column:maritalstatus;size:255;not null" json:"maritalstatus" form:"maritalstatus"`
	Category              string  `gorm:"size:255;not null" json:"category" form:"category"`
	ImagePath             *string `gorm:"size:255" json:"image_path" form:"-"`
	Idproof               string  `gorm:"column:idproof;size:255;not null" json:"idproof" form:"idproof"`
	IdproofImage          *string `gorm:"column:idproof_image;size:255" json:"idproof_image" form:"-"`
	FatherName            string  `gorm:"size:255;not null" json:"father_name" form:"father_name"`
	Correspondenceaddress string  `gorm:"column:correspondenceaddress;size:255;not null" json:"correspondenceaddress" form:"correspondenceaddress"`
	Permanentaddress      string  `gorm:"column:permanentaddress;size:255;not null" json:"permanentaddress" form:"permanentaddress"`
	Mobile                string  `gorm:"size:255;not null" json:"mobile" form:"mobile"`
	Altmobile             string  `gorm:"column:altmobile;size:255;not null" json:"altmobile" form:"altmobile"`
	Altemail              string  `gorm:"column:altemail;size:255;not null" json:"altemail" form:"altemail"`
	Landlinenumber        string  `gorm:"column:landlinenumber;size:255;not null" json:"landlinenumber" form:"landlinenumber"`
}

func (PersonalDetails) TableName() string {
	return "personaldetails"
}
