package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidUserName  = errors.New("invalid user name")
	ErrAmountTooLarge   = errors.New("amount exceeds representable range")
	ErrMetadataTooLarge = errors.New("metadata size exceeds limit")
)

// Validation constants
const (
	MaxUserNameLength = 255
	MinUserNameLength = 1
	MaxMetadataSize   = 10240 // 10KB
)

// ValidateUserName validates a user's display name.
func ValidateUserName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinUserNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidUserName)
	}

	if len(name) > MaxUserNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidUserName, MaxUserNameLength)
	}

	return nil
}

// ValidateMetadata validates metadata size against the storage limit.
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("metadata is not serializable: %w", err)
	}

	if len(data) > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes",
			ErrMetadataTooLarge, len(data), MaxMetadataSize)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
