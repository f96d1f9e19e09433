package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Bit is a boolean persisted as a 0/1 SMALLINT.
type Bit bool

// Value implements driver.Valuer.
func (b Bit) Value() (driver.Value, error) {
	if b {
		return int64(1), nil
	}
	return int64(0), nil
}

// Scan implements sql.Scanner.
func (b *Bit) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*b = false
	case int64:
		*b = v != 0
	case int32:
		*b = v != 0
	case bool:
		*b = Bit(v)
	case []byte:
		return b.parse(string(v))
	case string:
		return b.parse(v)
	default:
		return fmt.Errorf("failed to scan bit value: %v", value)
	}
	return nil
}

// MarshalJSON renders the flag as 0 or 1, the way it is stored.
func (b Bit) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts true/false, 0/1 and their quoted forms.
func (b *Bit) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "true":
		*b = true
	case "false", "null", "":
		*b = false
	default:
		return b.parse(s)
	}
	return nil
}

func (b *Bit) parse(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to scan bit value %q: %w", s, err)
	}
	*b = n != 0
	return nil
}

// WorkingPlace is one hospital or clinic slot.
type WorkingPlace struct {
	Name      string   `json:"name"`
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

// Venue kinds accepted in WorkingPlaces
const (
	VenueHospital = "hospital"
	VenueClinic   = "clinic"
)

// WorkingPlaces maps a venue kind to its ordered places. Stored as JSON text.
type WorkingPlaces map[string][]WorkingPlace

// Value implements driver.Valuer.
func (w WorkingPlaces) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (w *WorkingPlaces) Scan(value interface{}) error {
	bytes, err := textBytes(value)
	if err != nil || bytes == nil {
		*w = nil
		return err
	}
	result := WorkingPlaces{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return fmt.Errorf("failed to unmarshal working places: %w", err)
	}
	*w = result
	return nil
}

// ExperienceHistory is a free-form list of past positions. Stored as JSON text.
type ExperienceHistory []map[string]interface{}

// Value implements driver.Valuer.
func (h ExperienceHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (h *ExperienceHistory) Scan(value interface{}) error {
	bytes, err := textBytes(value)
	if err != nil || bytes == nil {
		*h = nil
		return err
	}
	var result ExperienceHistory
	if err := json.Unmarshal(bytes, &result); err != nil {
		return fmt.Errorf("failed to unmarshal experience history: %w", err)
	}
	*h = result
	return nil
}

func textBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New(fmt.Sprint("Failed to unmarshal text value:", value))
	}
}
