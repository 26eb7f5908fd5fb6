package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email     string `gorm:"uniqueIndex;not null"`
	Username  string
	Name      string
	AvatarURL string
	// ExternalID ties the row to the identity provider that authenticated
	// the caller.
	ExternalID string `gorm:"uniqueIndex;not null"`

	// Relationships
	Memberships []UserCampaign `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserActions []UserAction   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
