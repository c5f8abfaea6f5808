package usecase

import (
	"fmt"
	"strings"

	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
)

func normalizeID(kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s id is required", ErrInvalidInput, kind)
	}
	if !idgen.Valid(value) {
		return "", fmt.Errorf("%w: malformed %s id %q", ErrInvalidInput, kind, value)
	}
	return strings.ToLower(value), nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
