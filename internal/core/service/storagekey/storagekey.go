// Package storagekey derives and parses object storage keys. The key prefix
// encodes visibility scope, category and owner, so the completion verifier
// can recover those properties from the server-controlled key alone instead
// of trusting client-supplied fields.
package storagekey

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// key grammar: {scope}/{category}/{ownerID}/{unixnano}-{sanitized filename}

const maxFilenameLen = 128

var categoryScope = map[domain.Category]domain.Visibility{
	domain.CategoryAvatar:      domain.VisibilityPublic,
	domain.CategoryAttachment:  domain.VisibilityRestricted,
	domain.CategoryDeliverable: domain.VisibilityRestricted,
	domain.CategoryRawFootage:  domain.VisibilityRestricted,
	domain.CategoryMisc:        domain.VisibilityRestricted,
}

// Scope returns the visibility encoded for a category. Unknown categories get
// the restricted fallback; a miscategorized key must never widen access.
func Scope(category domain.Category) domain.Visibility {
	if scope, ok := categoryScope[category]; ok {
		return scope
	}
	return domain.VisibilityRestricted
}

// Normalize maps an unknown category to the generic fallback prefix instead
// of erroring. Key uniqueness, not categorization, is the safety-critical
// property here.
func Normalize(category domain.Category) domain.Category {
	if _, ok := categoryScope[category]; ok {
		return category
	}
	return domain.CategoryMisc
}

// Derive builds a unique, backend-safe storage key. The nanosecond timestamp
// disambiguates repeated uploads of the same filename by the same owner.
func Derive(category domain.Category, ownerID uuid.UUID, filename string, now time.Time) string {
	category = Normalize(category)
	return fmt.Sprintf("%s/%s/%s/%d-%s",
		Scope(category),
		category,
		ownerID.String(),
		now.UnixNano(),
		SanitizeFilename(filename),
	)
}

// ParsedKey is the prefix-derived identity of a stored object.
type ParsedKey struct {
	Scope    domain.Visibility
	Category domain.Category
	OwnerID  uuid.UUID
}

// Parse recovers scope, category and owner from a derived key.
func Parse(key string) (*ParsedKey, error) {
	segments := strings.SplitN(key, "/", 4)
	if len(segments) != 4 {
		return nil, fmt.Errorf("storage key %q does not match the prefix grammar", key)
	}

	scope := domain.Visibility(segments[0])
	if scope != domain.VisibilityPublic && scope != domain.VisibilityRestricted {
		return nil, fmt.Errorf("storage key %q has unknown scope %q", key, segments[0])
	}

	category := domain.Category(segments[1])
	if _, ok := categoryScope[category]; !ok {
		return nil, fmt.Errorf("storage key %q has unknown category %q", key, segments[1])
	}

	ownerID, err := uuid.Parse(segments[2])
	if err != nil {
		return nil, fmt.Errorf("storage key %q has invalid owner segment: %w", key, err)
	}

	return &ParsedKey{Scope: scope, Category: category, OwnerID: ownerID}, nil
}

// SanitizeFilename strips path components and any rune unsafe for the storage
// backend, keeping the extension intact.
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(unicode.ToLower(r))
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}

	safe := strings.Trim(b.String(), ".-_")
	if safe == "" {
		safe = "upload"
	}
	if len(safe) > maxFilenameLen {
		safe = safe[len(safe)-maxFilenameLen:]
	}
	return safe
}
