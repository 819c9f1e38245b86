// File: utils/constants.go
package utils

import "time"

// TokenKeyPrefix is the prefix used for persisted session-token keys.
const TokenKeyPrefix = "sessionToken:"

// WizardKeyPrefix is the prefix used for in-flight reservation wizard keys.
const WizardKeyPrefix = "wizard:"

// WizardTTL is the time-to-live for an abandoned reservation wizard.
const WizardTTL = 30 * time.Minute

// ReferenceCacheTTL is the time-to-live for cached reference data
// (locations, campaigns).
const ReferenceCacheTTL = 5 * time.Minute
