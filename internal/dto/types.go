package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean that also accepts 0/1 and their string forms.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(raw) {
	case "true", "1", "on", "yes":
		*f = true
	case "false", "0", "off", "no", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid boolean value %s", data)
	}
	return nil
}

// OptionalID is a nullable id that remembers whether it was present in the body.
// 0, "" and null all mean "no id".
type OptionalID struct {
	Set   bool
	Value *uint64
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var id uint64
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		if val < 0 || val != float64(uint64(val)) {
			return fmt.Errorf("invalid id %s", data)
		}
		id = uint64(val)
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		parsed, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", val)
		}
		id = parsed
	default:
		return fmt.Errorf("invalid id %s", data)
	}

	if id != 0 {
		o.Value = &id
	}
	return nil
}

// APIResponse is the envelope of every JSON mutation response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
