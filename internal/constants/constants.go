package constants

import "time"

// Context keys
const (
	ContextKeyPrincipal = "principal"
)

// Field length bounds shared by validation and model definitions
const (
	MinNameLength     = 3
	MaxNameLength     = 50
	MaxEmailLength    = 50
	MinContactLength  = 9
	MaxContactLength  = 12
	MinPasswordLength = 6

	MinTaskNameLength = 1
	MaxTaskNameLength = 50

	MinStatusCodeLength = 3
	MaxStatusCodeLength = 50
)

// DefaultStatusCode is assigned to tasks created without an explicit status.
const DefaultStatusCode = "TO_DO"

// TokenExpiry is the lifetime of issued access tokens.
const TokenExpiry = 24 * time.Hour
