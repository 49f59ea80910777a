package entities

import "strings"

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelLinkedin Channel = "linkedin"
	ChannelSMS      Channel = "sms"
)

func IsSupportedChannel(value Channel) bool {
	switch value {
	case ChannelEmail, ChannelLinkedin, ChannelSMS:
		return true
	default:
		return false
	}
}

// Step is one touchpoint in a campaign sequence, offset from the run start
// by DelayMinutes.
type Step struct {
	Channel      Channel
	DelayMinutes int
	Variants     []Variant
}

func (s Step) Valid() bool {
	if !IsSupportedChannel(s.Channel) {
		return false
	}
	if s.DelayMinutes < 0 {
		return false
	}
	for _, variant := range s.Variants {
		if variant.Weight < 0 {
			return false
		}
		if strings.TrimSpace(variant.Name) == "" {
			return false
		}
	}
	return true
}

// Variant is one weighted message template for an email step. Subject and
// Body may carry {{first_name}}, {{last_name}}, {{company}} and {{campaign}}
// tokens.
type Variant struct {
	Name    string
	Weight  int
	Subject string
	Body    string
}
