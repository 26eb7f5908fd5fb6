package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserCampaign joins a user to the campaign they enrolled in. The unique
// index on UserID is what guarantees a user holds at most one membership,
// even when two enrollments race.
type UserCampaign struct {
	gorm.Model

	UserID     uint `gorm:"not null;uniqueIndex:idx_user_campaign_user"`
	CampaignID uint `gorm:"not null;index"`
	// Data carries enrollment metadata such as the motive.
	Data datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Campaign Campaign `gorm:"foreignKey:CampaignID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
