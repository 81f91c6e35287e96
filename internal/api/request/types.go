package request

import "github.com/GrahamMcBain/urit/internal/model"

// UpdatePlayerRequest is the request body for PUT /players/{id}.
// Omitted fields keep their stored value.
type UpdatePlayerRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Handle      *string `json:"handle,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Patch converts the request into a player patch
func (r UpdatePlayerRequest) Patch(id model.PlayerID) model.PlayerPatch {
	patch := model.PlayerPatch{ID: id}
	if r.DisplayName != nil {
		patch.DisplayName = model.Some(*r.DisplayName)
	}
	if r.Handle != nil {
		patch.Handle = model.Some(*r.Handle)
	}
	if r.AvatarURL != nil {
		patch.AvatarURL = model.Some(*r.AvatarURL)
	}
	return patch
}

// TagRequest is the request body for POST /tag
type TagRequest struct {
	TaggerID      int64 `json:"tagger_id"`
	TaggedID      int64 `json:"tagged_id"`
	AdminOverride bool  `json:"admin_override,omitempty"`
}

// AdminResetRequest is the request body for POST /admin/reset
type AdminResetRequest struct {
	AdminID int64 `json:"admin_id"`
}
