package models

// Notification describes one outbound message to a recipient.
type Notification struct {
	ID               string                 `json:"id"`
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // player or kingdom
	NotificationType string                 `json:"notificationType"`
	Priority         string                 `json:"priority"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	Status           string                 `json:"status"`
	SentAt           string                 `json:"sentAt"`
}

// Notification types emitted by the transfer workflows.
const (
	NotificationMatchFound         = "match-found"
	NotificationApplicationCreated = "application-created"
	NotificationApplicationStatus  = "application-status"
)
