package domain

import (
	"fmt"
	"strings"
)

// EnchantmentID identifies an enchantment in "namespace:path" form,
// e.g. "minecraft:sharpness". The zero value is invalid.
type EnchantmentID string

// ParseEnchantmentID validates a raw string as an enchantment identifier.
// Both namespace and path must be non-empty and contain only lowercase
// letters, digits, underscores, hyphens, dots and slashes (path only).
func ParseEnchantmentID(raw string) (EnchantmentID, error) {
	namespace, path, ok := strings.Cut(raw, ":")
	if !ok || namespace == "" || path == "" {
		return "", fmt.Errorf("%s: %q", ErrMsgInvalidEnchantmentID, raw)
	}
	if !validIDSegment(namespace, false) || !validIDSegment(path, true) {
		return "", fmt.Errorf("%s: %q", ErrMsgInvalidEnchantmentID, raw)
	}
	return EnchantmentID(raw), nil
}

func validIDSegment(s string, allowSlash bool) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		case r == '/' && allowSlash:
		default:
			return false
		}
	}
	return true
}

// Namespace returns the part before the colon.
func (id EnchantmentID) Namespace() string {
	namespace, _, _ := strings.Cut(string(id), ":")
	return namespace
}

// Path returns the part after the colon.
func (id EnchantmentID) Path() string {
	_, path, _ := strings.Cut(string(id), ":")
	return path
}

func (id EnchantmentID) String() string {
	return string(id)
}
