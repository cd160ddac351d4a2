// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"github.com/pkg/errors"
)

// suffixReserve is subtracted from the platform name limit for composed locks,
// which derive their sub-object names by appending '.exc', '.cond', '.cnt'
// and '.pri' to the base name.
const suffixReserve = 8

func isNameChar(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '.'
}

// checkObjectName validates a primitive name against the allowed charset
// and the platform length limit.
func checkObjectName(name string, maxLen int) error {
	if len(name) == 0 {
		return errors.New("object name is empty")
	}
	if len(name) > maxLen {
		return errors.Errorf("object name %q exceeds the limit of %d characters", name, maxLen)
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return errors.Errorf("object name %q contains invalid character %q", name, name[i])
		}
	}
	return nil
}
