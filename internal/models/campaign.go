package models

import "gorm.io/gorm"

type Campaign struct {
	gorm.Model

	Slug string `gorm:"uniqueIndex;not null"`

	// Relationships
	Actions []Action `gorm:"foreignKey:CampaignID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
