// Package policy is the access gate in front of grant issuance: it maps
// (role, category, mime type, declared size) to an explicit allow or deny.
package policy

import (
	"fmt"
	"strings"

	"media-vault/internal/core/domain"
)

const (
	mib = int64(1) << 20
	gib = int64(1) << 30
)

// CategoryRule is the per-category ceiling and allow-list.
type CategoryRule struct {
	MaxSizeBytes int64
	// MimePatterns supports exact matches ("application/pdf") and
	// wildcard-prefix patterns ("video/*").
	MimePatterns []string
	// Roles allowed to write this category. Empty means any authenticated role.
	Roles []domain.Role
}

var categoryRules = map[domain.Category]CategoryRule{
	domain.CategoryAvatar: {
		MaxSizeBytes: 5 * mib,
		MimePatterns: []string{"image/*"},
	},
	domain.CategoryAttachment: {
		MaxSizeBytes: 100 * mib,
		MimePatterns: []string{"image/*", "application/pdf", "application/zip", "text/plain"},
	},
	domain.CategoryDeliverable: {
		MaxSizeBytes: 5 * gib,
		MimePatterns: []string{"video/*", "image/*", "application/pdf"},
		Roles:        []domain.Role{domain.RoleProducer, domain.RoleAdmin},
	},
	domain.CategoryRawFootage: {
		MaxSizeBytes: 50 * gib,
		MimePatterns: []string{"video/*"},
		Roles:        []domain.Role{domain.RoleProducer, domain.RoleAdmin},
	},
}

// Gate decides whether a principal may start an upload.
type Gate struct{}

// NewGate creates the access policy gate.
func NewGate() *Gate {
	return &Gate{}
}

// Authorize returns nil when the upload is allowed, or an error wrapping
// domain.ErrPolicyDenied naming the violated rule. Denial is always explicit;
// declared sizes are never truncated to fit.
func (g *Gate) Authorize(role domain.Role, category domain.Category, mimeType string, sizeBytes int64) error {
	rule, ok := categoryRules[category]
	if !ok {
		return fmt.Errorf("%w: unknown category %q", domain.ErrPolicyDenied, category)
	}

	if len(rule.Roles) > 0 && !roleAllowed(role, rule.Roles) {
		return fmt.Errorf("%w: role %q may not write category %q", domain.ErrPolicyDenied, role, category)
	}

	if sizeBytes <= 0 {
		return fmt.Errorf("%w: declared size must be positive", domain.ErrPolicyDenied)
	}
	if sizeBytes > rule.MaxSizeBytes {
		return fmt.Errorf("%w: size %d exceeds %d byte ceiling for category %q",
			domain.ErrPolicyDenied, sizeBytes, rule.MaxSizeBytes, category)
	}

	if !MimeAllowed(mimeType, rule.MimePatterns) {
		return fmt.Errorf("%w: mime type %q not allowed for category %q", domain.ErrPolicyDenied, mimeType, category)
	}

	return nil
}

// MaxSize returns the size ceiling for a category, zero when unknown.
func (g *Gate) MaxSize(category domain.Category) int64 {
	return categoryRules[category].MaxSizeBytes
}

// AllowedMimeTypes returns the mime patterns permitted for a category.
func (g *Gate) AllowedMimeTypes(category domain.Category) []string {
	return categoryRules[category].MimePatterns
}

// MimeAllowed checks a mime type against exact and wildcard-prefix patterns.
func MimeAllowed(mimeType string, patterns []string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		return false
	}
	for _, pattern := range patterns {
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
			continue
		}
		if mimeType == pattern {
			return true
		}
	}
	return false
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
