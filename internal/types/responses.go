package types

import "gorm.io/datatypes"

type UserResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
	ExternalID string `json:"external_id"`
}

type ActionResponse struct {
	ID          uint           `json:"id"`
	CampaignID  uint           `json:"campaignId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Config      datatypes.JSON `json:"config"`
}

type CampaignResponse struct {
	ID      uint             `json:"id"`
	Slug    string           `json:"slug"`
	Actions []ActionResponse `json:"actions"`
}

type UserActionResponse struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"userId"`
	ActionID   uint            `json:"actionId"`
	CampaignID uint            `json:"campaignId"`
	Completed  bool            `json:"completed"`
	Action     *ActionResponse `json:"action,omitempty"`
}

// UserActionSummary flattens an action together with the caller's progress
// on it. UserActionID is nil until an action record has been issued for the
// user, in which case Completed defaults to false.
type UserActionSummary struct {
	ActionID     uint           `json:"actionId"`
	UserActionID *uint          `json:"userActionId"`
	CampaignID   uint           `json:"campaignId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Type         string         `json:"type"`
	Config       datatypes.JSON `json:"config"`
	Completed    bool           `json:"completed"`
}

// OkResponse reports a business outcome as a value: enrollment returns
// ok=false when the caller is already a member, never an error body.
type OkResponse struct {
	Ok bool `json:"ok"`
}
