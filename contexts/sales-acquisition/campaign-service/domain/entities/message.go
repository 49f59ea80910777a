package entities

import "time"

type MessageStatus string

const (
	MessageStatusQueued    MessageStatus = "queued"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusOpened    MessageStatus = "opened"
	MessageStatusClicked   MessageStatus = "clicked"
	MessageStatusReplied   MessageStatus = "replied"
	MessageStatusBounced   MessageStatus = "bounced"
	MessageStatusFailed    MessageStatus = "failed"
)

func IsSupportedMessageStatus(value MessageStatus) bool {
	switch value {
	case MessageStatusQueued, MessageStatusSent, MessageStatusDelivered,
		MessageStatusOpened, MessageStatusClicked, MessageStatusReplied,
		MessageStatusBounced, MessageStatusFailed:
		return true
	default:
		return false
	}
}

type MessageDirection string

const (
	MessageDirectionOutbound MessageDirection = "outbound"
	MessageDirectionInbound  MessageDirection = "inbound"
)

type MessageMetadata struct {
	StepIndex int
	Variant   string
}

type OutboundMessage struct {
	MessageID   string
	AccountID   string
	CampaignID  string
	LeadID      string
	Direction   MessageDirection
	Status      MessageStatus
	Subject     string
	BodyText    string
	ScheduledAt time.Time
	SentAt      *time.Time
	Metadata    MessageMetadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
