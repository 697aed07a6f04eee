package dto

// UploadAvatarRequest carries the already-hosted image reference. There is no
// file upload pipeline; clients upload elsewhere and hand over the URL.
type UploadAvatarRequest struct {
	AvatarURL string `json:"avatar_url" binding:"required"`
}
