package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"docpool/internal/domain/entity"
)

var weekdays = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
	"saturday":  "Saturday",
	"sunday":    "Sunday",
}

// rawJSON returns the JSON text of a structured value that arrived either
// already serialized (a string) or decoded (maps/slices).
func rawJSON(raw interface{}) ([]byte, error) {
	if s, ok := raw.(string); ok {
		if !json.Valid([]byte(s)) {
			return nil, errors.New("must be valid JSON")
		}
		return []byte(s), nil
	}
	return json.Marshal(raw)
}

func decodeWorkingPlaces(raw interface{}) (string, error) {
	data, err := rawJSON(raw)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var places entity.WorkingPlaces
	if err := dec.Decode(&places); err != nil {
		return "", errors.New("must map hospital/clinic to a list of {name, days, startTime, endTime}")
	}
	if places == nil {
		places = entity.WorkingPlaces{}
	}

	for kind, list := range places {
		if kind != entity.VenueHospital && kind != entity.VenueClinic {
			return "", fmt.Errorf("has unknown venue kind %q", kind)
		}
		for i := range list {
			if err := checkWorkingPlace(&list[i]); err != nil {
				return "", fmt.Errorf("%s[%d] %w", kind, i, err)
			}
		}
	}

	out, err := json.Marshal(places)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func checkWorkingPlace(p *entity.WorkingPlace) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	for i, d := range p.Days {
		canonical, ok := weekdays[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return fmt.Errorf("has unknown day %q", d)
		}
		p.Days[i] = canonical
	}
	for _, t := range []string{p.StartTime, p.EndTime} {
		if t == "" {
			continue
		}
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("has invalid time %q, use HH:MM", t)
		}
	}
	return nil
}

func decodeExperienceHistory(raw interface{}) (string, error) {
	data, err := rawJSON(raw)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var history []map[string]interface{}
	if err := dec.Decode(&history); err != nil {
		return "", errors.New("must be a list of objects")
	}
	if history == nil {
		history = []map[string]interface{}{}
	}

	out, err := json.Marshal(history)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
