package models

// Publications holds the summary counts entered on page 4.
type Publications struct {
	ID uint `gorm:"primaryKey" json:"id" form:"-"`
	Owner
	SummaryJournalInter string `gorm:"size:255" json:"summary_journal_inter" form:"summary_journal_inter"`
	SummaryJournal      string `gorm:"size:255" json:"summary_journal" form:"summary_journal"`
	SummaryConfInter    string `gorm:"size:255" json:"summary_conf_inter" form:"summary_conf_inter"`
	SummaryConfNational string `gorm:"size:255" json:"summary_conf_national" form:"summary_conf_national"`
	PatentPublish       string `gorm:"size:255" json:"patent_publish" form:"patent_publish"`
	SummaryBook         string `gorm:"size:255" json:"summary_book" form:"summary_book"`
	SummaryBookChapter  string `gorm:"size:255" json:"summary_book_chapter" form:"summary_book_chapter"`
}

func (Publications) TableName() string {
	return "publications"
}

type TopPublication struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	Author  string `gorm:"size:255" json:"author"`
	Title   string `gorm:"size:255" json:"title"`
	Journal string `gorm:"size:255" json:"journal"`
	Year    string `gorm:"size:255" json:"year"`
	Impact  string `gorm:"size:255" json:"impact"`
	Doi     string `gorm:"column:doi;size:255" json:"doi"`
	Status  string `gorm:"size:255" json:"status"`
}

func (TopPublication) TableName() string {
	return "top10publications"
}

type Patent struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	Pauthor        string `gorm:"column:pauthor;size:255" json:"pauthor"`
	Ptitle         string `gorm:"column:ptitle;size:255" json:"ptitle"`
	PCountry       string `gorm:"column:p_country;size:255" json:"p_country"`
	PNumber        string `gorm:"column:p_number;size:255" json:"p_number"`
	PyearFiled     string `gorm:"column:pyear_filed;size:255" json:"pyear_filed"`
	PyearPublished string `gorm:"column:pyear_published;size:255" json:"pyear_published"`
	PyearIssued    string `gorm:"column:pyear_issued;size:255" json:"pyear_issued"`
}

func (Patent) TableName() string {
	return "patents"
}

type Book struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	Bauthor string `gorm:"column:bauthor;size:255" json:"bauthor"`
	Btitle  string `gorm:"column:btitle;size:255" json:"btitle"`
	Byear   string `gorm:"column:byear;size:255" json:"byear"`
	Bisbn   string `gorm:"column:bisbn;size:255" json:"bisbn"`
}

func (Book) TableName() string {
	return "books"
}

type BookChapter struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	BcAuthor string `gorm:"column:bc_author;size:255" json:"bc_author"`
	BcTitle  string `gorm:"column:bc_title;size:255" json:"bc_title"`
	BcYear   string `gorm:"column:bc_year;size:255" json:"bc_year"`
	BcIsbn   string `gorm:"column:bc_isbn;size:255" json:"bc_isbn"`
}

func (BookChapter) TableName() string {
	return "book_chapters"
}

// GoogleLink is the applicant's Google Scholar profile URL.
type GoogleLink struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	Googlelink string `gorm:"column:googlelink;size:255" json:"googlelink"`
}

func (GoogleLink) TableName() string {
	return "googlelink"
}
