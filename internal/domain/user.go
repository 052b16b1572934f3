package domain

import "time"

// Profile holds per-chat user data collected during onboarding.
type Profile struct {
	ChatID    int64
	Name      string    // display name; empty until onboarding stores it
	City      string    // weather location; empty until validated and stored
	CreatedAt time.Time // UTC
}

// Configured reports whether the profile is eligible for weather queries
// and monitoring: a non-empty, validated city.
func (p *Profile) Configured() bool {
	return p != nil && p.City != ""
}

// OnboardingState is the explicit per-user conversation state. Free-form
// text is only meaningful while a conversation is pending; StateIdle means
// commands drive everything.
type OnboardingState int

const (
	StateIdle OnboardingState = iota
	StateAwaitingName
	StateAwaitingCity
)

func (s OnboardingState) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingCity:
		return "awaiting_city"
	default:
		return "idle"
	}
}
