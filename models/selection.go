// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSelection = errors.New("vote must be a nominee id or \"skip\"")

// Selection is a single category choice: a nominee or an explicit skip.
type Selection struct {
	NomineeID int64
	Skip      bool
}

// Skip returns a skip selection.
func Skip() Selection {
	return Selection{Skip: true}
}

// Vote returns a selection for the given nominee.
func Vote(nomineeID int64) Selection {
	return Selection{NomineeID: nomineeID}
}

// ParseSelection accepts "skip" or a positive decimal nominee id.
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == SkipValue {
		return Skip(), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidSelection, s)
	}
	return Vote(id), nil
}

// MarshalJSON renders a skip as "skip" and a vote as a bare number.
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.Skip {
		return json.Marshal(SkipValue)
	}
	return json.Marshal(s.NomineeID)
}

// UnmarshalJSON accepts "skip", a numeric string or a JSON number.
func (s *Selection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		sel, err := ParseSelection(str)
		if err != nil {
			return err
		}
		*s = sel
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil || id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSelection, data)
	}
	*s = Vote(id)
	return nil
}
