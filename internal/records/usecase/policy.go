package usecase

import (
	"fmt"
	"strings"
)

// StartupPolicy decides what a failed preload does to the process.
type StartupPolicy string

const (
	// StartupPolicyAbort makes a failed preload fatal.
	StartupPolicyAbort StartupPolicy = "abort"
	// StartupPolicyFallback logs the failure and starts with no records.
	StartupPolicyFallback StartupPolicy = "fallback"
)

// ParseStartupPolicy accepts "abort" or "fallback", case-insensitively.
// An empty value means abort.
func ParseStartupPolicy(value string) (StartupPolicy, error) {
	switch StartupPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", StartupPolicyAbort:
		return StartupPolicyAbort, nil
	case StartupPolicyFallback:
		return StartupPolicyFallback, nil
	default:
		return "", fmt.Errorf("unknown startup parse error policy %q (want abort or fallback)", value)
	}
}
