package models

import (
	"time"
)

// User is the account model. Email is the login identifier; username is
// display-facing and restricted by the validators package.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"size:150;not null" json:"first_name"`
	LastName     string    `gorm:"size:150;not null" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Follow is a directed subscription edge between two users. The pair is
// unique; user == author is rejected at write time by the follow service.
type Follow struct {
	ID       uint `gorm:"primarykey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"user"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"author"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
