package models

import "github.com/jinzhu/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	gorm.Model
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string
	Posts        []Post    `gorm:"foreignkey:UserID"`
	Comments     []Comment `gorm:"foreignkey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Post struct {
	gorm.Model
	Title    string `gorm:"unique"`
	Subtitle string
	// Дата создания в длинном формате ("April 05, 2024"), после создания не меняется
	Date         string
	Body         string `gorm:"type:text"`
	ImageURL     string
	UserID       uint      // автор, не меняется при редактировании
	LastEditorID uint      // кто последним редактировал пост
	Comments     []Comment `gorm:"foreignkey:PostID"`
}

type Comment struct {
	gorm.Model
	Text     string `gorm:"type:text"`
	UserID   uint
	PostID   uint
	ParentID *uint
}
