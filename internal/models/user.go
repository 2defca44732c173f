// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an applicant account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Owner ties a row to the applicant that wrote it. Rows are looked up by
// UserID; Email is kept alongside for readability of the raw tables.
type Owner struct {
	UserID uint   `gorm:"not null;index" json:"user_id" form:"-"`
	Email  string `gorm:"size:255;not null" json:"email" form:"-"`
}

// SetOwner stamps the row with its owner.
func (o *Owner) SetOwner(userID uint, email string) {
	o.UserID = userID
	o.Email = email
}

// Owned is implemented by every per-applicant row.
type Owned interface {
	SetOwner(userID uint, email string)
}

// Profile holds the name and category captured at signup.
type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owner
	FirstName string `gorm:"size:255;not null" json:"first_name"`
	LastName  string `gorm:"size:255;not null" json:"last_name"`
	Category  string `gorm:"size:255;not null" json:"category"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profile"
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
