package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Action struct {
	gorm.Model

	CampaignID  uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	// Type tells the client which UI to render for this action.
	Type string `gorm:"not null"`
	// Config carries whatever that UI needs. Its internal structure is owned
	// by the client, not the store.
	Config datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Campaign Campaign `gorm:"foreignKey:CampaignID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
