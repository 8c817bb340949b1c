package types

// Profile is the onboarding data owned by the companion setup flow.
// This module only reads it.
type Profile struct {
	UserName      string `json:"username"`
	CompanionKind string `json:"petType"`
	Story         string `json:"customStory"`
}

// CompanionName is the fixed name of the companion persona.
const CompanionName = "Zizi"

// DefaultCompanionKind is used when onboarding stored no kind.
const DefaultCompanionKind = "pet"
