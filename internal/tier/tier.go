// Package tier resolves caller identity to a permission tier and answers
// feature-access questions. Resolution is idempotent and never cached:
// recomputing per request is cheap and keeps this package stateless.
package tier

import (
	"strings"

	"github.com/dkarpele/havengate/internal/model"
)

// Resolver maps caller identity to a TierInfo.
type Resolver struct {
	admins map[string]bool
}

// NewResolver creates a Resolver with the given admin email allow-list.
// Matching is case-insensitive.
func NewResolver(adminEmails []string) *Resolver {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &Resolver{admins: admins}
}

// NewDefaultResolver creates a Resolver with the built-in allow-list.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultAdminEmails)
}

// Resolve maps a caller id and email to a tier, checked in order:
//
//  1. Missing id or email — anonymous, always valid.
//  2. Email on the admin allow-list — admin.
//  3. Everything else — free.
//
// An email that is present but not plausibly an address marks the identity
// invalid; the authorizer treats that as an authentication failure. The
// sanctuary tier is never produced here — its source is an external
// subscription record, and callers supply it explicitly.
func (r *Resolver) Resolve(callerID, email string) model.TierInfo {
	callerID = strings.TrimSpace(callerID)
	normalized := strings.ToLower(strings.TrimSpace(email))

	if callerID == "" || normalized == "" {
		return model.TierInfo{
			Tier:     model.TierAnonymous,
			Valid:    true,
			CallerID: callerID,
		}
	}

	info := model.TierInfo{
		Valid:    strings.Contains(normalized, "@"),
		Email:    normalized,
		CallerID: callerID,
	}

	if r.admins[normalized] {
		info.Tier = model.TierAdmin
		return info
	}

	info.Tier = model.TierFree
	return info
}
