package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Component is a single hardware pick in a setup.
type Component struct {
	Type  string `json:"type"`
	Model string `json:"model"`
}

// ComponentList is the ordered component sequence of a setup, persisted as JSON.
type ComponentList []Component

// Value marshals the list into JSON for the database.
func (c ComponentList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes the stored JSON back into the list.
func (c *ComponentList) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("components: unsupported scan type %T", value)
	}

	var result ComponentList
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*c = result
	return nil
}
