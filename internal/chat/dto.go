package chat

import (
	"time"

	"insight-chat/internal/render"
	"insight-chat/internal/transcript"
)

// MessageResponse is the outward-facing representation of a transcript entry.
type MessageResponse struct {
	MessageID  string    `json:"messageId"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	HasPayload bool      `json:"hasPayload"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FacetsResponse carries the three presentational facets of one settled
// analysis payload.
type FacetsResponse struct {
	MessageID string           `json:"messageId"`
	Narrative string           `json:"narrative"`
	Chart     render.Chart     `json:"chart"`
	Table     render.TablePage `json:"table"`
}

// AttachmentResponse describes the currently held spreadsheet.
type AttachmentResponse struct {
	AttachmentID string `json:"attachmentId"`
	FileName     string `json:"fileName"`
	SizeBytes    int64  `json:"sizeBytes"`
}

func toMessageResponse(e transcript.Entry) MessageResponse {
	return MessageResponse{
		MessageID:  e.ID,
		Role:       string(e.Role),
		Content:    e.Content,
		HasPayload: e.Payload != nil,
		CreatedAt:  e.CreatedAt,
	}
}
