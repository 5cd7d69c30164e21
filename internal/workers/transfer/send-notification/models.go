// internal/workers/transfer/send-notification/models.go
package sendnotification

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "player" or "kingdom"
	NotificationType string                 `json:"notificationType"`
	ListingID        string                 `json:"listingId,omitempty"`
	ApplicationID    string                 `json:"applicationId,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeMatchFound         = "match_found"
	TypeApplicationCreated = "application_created"
	TypeApplicationStatus  = "application_status"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypePlayer  = "player"
	RecipientTypeKingdom = "kingdom"
)
