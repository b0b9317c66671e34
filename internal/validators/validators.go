// Package validators holds the pure format checks shared by the user and
// recipe write paths. Every function either returns the value unchanged or
// an error describing the violated rule.
package validators

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	hexColorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// MinValue is the lower bound for cooking time and ingredient amounts.
const MinValue = 1

// NotMeUsername rejects the reserved username "me" in any casing.
func NotMeUsername(value string) (string, error) {
	if strings.ToLower(value) == "me" {
		return "", fmt.Errorf("username %q is not available", value)
	}
	return value, nil
}

// Username checks the allowed username character set.
func Username(value string) (string, error) {
	if !usernameRe.MatchString(value) {
		return "", fmt.Errorf("username contains invalid characters")
	}
	return value, nil
}

// HexColor checks a 3- or 6-digit hex color with a leading '#'.
func HexColor(value string) (string, error) {
	if !hexColorRe.MatchString(value) {
		return "", fmt.Errorf("invalid hex color code")
	}
	return value, nil
}

// Min rejects values below the given threshold.
func Min(value, min int) (int, error) {
	if value < min {
		return 0, fmt.Errorf("value %d is below the minimum of %d", value, min)
	}
	return value, nil
}
