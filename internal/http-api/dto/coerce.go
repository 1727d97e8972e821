package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Clients submit catalog payloads straight from external book APIs, where
// author/isbn/publisher fields arrive either as a plain string or as an array
// of strings. These types absorb both shapes during unmarshalling.

// JoinedString coerces an array of strings to one comma-joined string.
type JoinedString string

func (s *JoinedString) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = JoinedString(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = JoinedString(strings.Join(many, ", "))
	return nil
}

// FirstString coerces an array of strings to its first element.
type FirstString string

func (s *FirstString) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = FirstString(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if len(many) > 0 {
		*s = FirstString(many[0])
	}
	return nil
}

// FlexInt accepts a JSON number or a numeric string ("42").
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*n = FlexInt(parsed)
	return nil
}
