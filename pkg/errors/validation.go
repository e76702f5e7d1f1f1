package errors

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input limits enforced by the board service on note submissions.
const (
	MaxNicknameLength = 10
	MaxMessageLength  = 100
	maxBoardIDLength  = 64
)

// ValidateCanvas checks that both canvas dimensions are finite and positive.
func ValidateCanvas(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidCanvas, "canvas width must be positive, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidCanvas, "canvas height must be positive, got %v", height)
	}
	return nil
}

// ValidateTextLength checks that a glyph count is non-negative.
func ValidateTextLength(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidTextLength, "text length must be non-negative, got %d", n)
	}
	return nil
}

// ValidatePage checks that a page number is non-negative.
func ValidatePage(page int) error {
	if page < 0 {
		return New(ErrCodeInvalidPage, "page must be non-negative, got %d", page)
	}
	return nil
}

// ValidateBoardID validates a board identifier used in cache keys and file names.
//
// Board IDs are short opaque slugs (the board service uses the first 8 hex
// characters of a UUID), so the rules are conservative:
//   - No empty IDs
//   - Maximum length of 64 characters
//   - No control characters, path separators, or traversal sequences
func ValidateBoardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "board id cannot be empty")
	}
	if len(id) > maxBoardIDLength {
		return New(ErrCodeInvalidInput, "board id too long (max %d characters)", maxBoardIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "board id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "board id contains invalid characters: %q", id)
	}
	return nil
}

// ValidateNickname validates the author name shown above a note.
func ValidateNickname(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidInput, "nickname cannot be empty")
	}
	if n := utf8.RuneCountInString(name); n > MaxNicknameLength {
		return New(ErrCodeInvalidInput, "nickname too long (%d > %d characters)", n, MaxNicknameLength)
	}
	return nil
}

// ValidateMessage validates a note's message text.
func ValidateMessage(msg string) error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return New(ErrCodeInvalidInput, "message cannot be empty")
	}
	if n := utf8.RuneCountInString(msg); n > MaxMessageLength {
		return New(ErrCodeInvalidInput, "message too long (%d > %d characters)", n, MaxMessageLength)
	}
	return nil
}
