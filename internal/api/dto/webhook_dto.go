package dto

// VoiceWebhookRequest is the payload posted by the telephony provider
// after transcribing a call.
type VoiceWebhookRequest struct {
	BrandID    string  `json:"brand_id"`
	Transcript string  `json:"transcript"`
	CallerID   *string `json:"caller_id,omitempty"`
	UserID     *string `json:"user_id,omitempty"`
}

// ChatWebhookRequest is the payload posted by the chat provider.
type ChatWebhookRequest struct {
	BrandID string  `json:"brand_id"`
	Message string  `json:"message"`
	UserID  *string `json:"user_id,omitempty"`
}
