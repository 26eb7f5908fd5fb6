package models

import "gorm.io/gorm"

// UserAction tracks one user's progress on one action. CampaignID is
// denormalized from the action so per-campaign listings need no join.
type UserAction struct {
	gorm.Model

	UserID     uint `gorm:"not null;uniqueIndex:idx_user_action"`
	ActionID   uint `gorm:"not null;uniqueIndex:idx_user_action"`
	CampaignID uint `gorm:"not null;index"`
	Completed  bool `gorm:"not null;default:false"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Action   Action   `gorm:"foreignKey:ActionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Campaign Campaign `gorm:"foreignKey:CampaignID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
