// Package model defines database models
package model

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli" json:"created_at"`

	Folders []Folder `gorm:"foreignKey:UserID" json:"-"`
	Media   []Media  `gorm:"foreignKey:UserID" json:"-"`
}
