package errors

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrMessageNotFound        = errors.New("message not found")
	ErrInvalidCampaignInput   = errors.New("invalid campaign input")
	ErrInvalidStateTransition = errors.New("invalid campaign state transition")
	ErrCampaignNotRunnable    = errors.New("campaign not runnable")
	ErrInvalidMessageStatus   = errors.New("invalid message status")
	ErrAccountRequired        = errors.New("account id required")
)
