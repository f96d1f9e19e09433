package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"docpool/pkg/validator"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var validate = validator.NewValidator()

// Normalize converts one inbound value to the value written to the store:
// bits become int64 0/1, structured values become JSON text and empty optional
// values become nil.
func Normalize(raw interface{}, f Field) (interface{}, error) {
	switch f.Kind {
	case KindText:
		return normalizeText(raw, f)
	case KindInteger:
		return normalizeInteger(raw, f)
	case KindDecimal:
		return normalizeDecimal(raw, f)
	case KindBit:
		return normalizeBit(raw, f)
	case KindDate:
		return normalizeDate(raw, f)
	case KindEnum:
		return normalizeEnum(raw, f)
	case KindStructured:
		return normalizeStructured(raw, f)
	default:
		return nil, invalid(f.Name, "has an unsupported kind")
	}
}

// NormalizeCreate validates a full creation payload and returns a value for
// every registered column. Unknown keys are rejected; identifiers and
// timestamps are ignored. full_name is composed from its parts when absent.
func NormalizeCreate(fields map[string]interface{}) (map[string]interface{}, error) {
	values, errs := normalizeSupplied(fields)

	if values[FieldFullName] == nil {
		composed := ComposeFullName(
			stringValue(values[FieldFirstName]),
			stringValue(values[FieldMiddleName]),
			stringValue(values[FieldLastName]),
		)
		if composed != "" {
			values[FieldFullName] = composed
		}
	}

	for _, f := range Fields {
		if _, failed := errs.has(f.Name); failed {
			continue
		}
		if values[f.Name] != nil {
			continue
		}
		if f.Default != nil {
			values[f.Name] = f.Default
			continue
		}
		if f.Required {
			errs = append(errs, invalid(f.Name, "is required"))
			continue
		}
		values[f.Name] = nil
	}

	if len(errs) > 0 {
		return nil, errs.sorted()
	}
	return values, nil
}

// NormalizeUpdate validates a partial payload and returns only the supplied
// columns. Identifier and timestamp keys are dropped silently.
func NormalizeUpdate(fields map[string]interface{}) (map[string]interface{}, error) {
	values, errs := normalizeSupplied(fields)

	for name, v := range values {
		f := registry[name]
		if f.Required && v == nil {
			errs = append(errs, invalid(name, "cannot be empty"))
		}
	}

	if len(errs) > 0 {
		return nil, errs.sorted()
	}
	return values, nil
}

func normalizeSupplied(fields map[string]interface{}) (map[string]interface{}, ValidationErrors) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]interface{}, len(Fields))
	var errs ValidationErrors
	for _, k := range keys {
		if _, skip := readOnly[k]; skip {
			continue
		}
		f, ok := registry[k]
		if !ok {
			errs = append(errs, invalid(k, "is not a recognized field"))
			continue
		}
		v, err := Normalize(fields[k], f)
		if err != nil {
			errs = append(errs, asValidationError(f.Name, err))
			continue
		}
		values[k] = v
	}
	return values, errs
}

func (v ValidationErrors) has(field string) (*ValidationError, bool) {
	for _, e := range v {
		if e.Field == field {
			return e, true
		}
	}
	return nil, false
}

func asValidationError(field string, err error) *ValidationError {
	if ve, ok := err.(*ValidationError); ok {
		return ve
	}
	return invalid(field, err.Error())
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func normalizeText(raw interface{}, f Field) (interface{}, error) {
	var s string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil, invalid(f.Name, "must be text")
	}

	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if f.Format != "" {
		if err := validate.Var(s, f.Format); err != nil {
			return nil, invalid(f.Name, "must be a valid "+f.Format)
		}
	}
	return s, nil
}

func normalizeInteger(raw interface{}, f Field) (interface{}, error) {
	var n int64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, invalid(f.Name, "must be a whole number")
		}
		n = i
	case float64:
		if v != math.Trunc(v) {
			return nil, invalid(f.Name, "must be a whole number")
		}
		n = int64(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, invalid(f.Name, "must be a whole number")
		}
		n = i
	default:
		return nil, invalid(f.Name, "must be a whole number")
	}

	if f.Min != nil && n < *f.Min {
		return nil, invalid(f.Name, fmt.Sprintf("must be greater than or equal to %d", *f.Min))
	}
	return n, nil
}

func normalizeDecimal(raw interface{}, f Field) (interface{}, error) {
	var d decimal.Decimal
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, invalid(f.Name, "must be a number")
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return nil, invalid(f.Name, "must be a number")
		}
		d = parsed
	default:
		return nil, invalid(f.Name, "must be a number")
	}

	if f.Min != nil && d.LessThan(decimal.NewFromInt(*f.Min)) {
		return nil, invalid(f.Name, fmt.Sprintf("must be greater than or equal to %d", *f.Min))
	}
	if f.Precision > 0 {
		if !d.Equal(d.Truncate(f.Scale)) {
			return nil, invalid(f.Name, fmt.Sprintf("must have at most %d decimal places", f.Scale))
		}
		if d.Abs().GreaterThanOrEqual(decimal.New(1, f.Precision-f.Scale)) {
			return nil, invalid(f.Name, fmt.Sprintf("must be less than 1e%d", f.Precision-f.Scale))
		}
	}
	return d, nil
}

func normalizeBit(raw interface{}, f Field) (interface{}, error) {
	switch v := raw.(type) {
	case nil:
		return int64(0), nil
	case bool:
		return bitOf(v), nil
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, invalid(f.Name, "must be a boolean")
		}
		return bitOf(n != 0), nil
	case float64:
		return bitOf(v != 0), nil
	case int:
		return bitOf(v != 0), nil
	case int64:
		return bitOf(v != 0), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return int64(1), nil
		case "", "0", "false", "no", "n", "off":
			return int64(0), nil
		}
	}
	return nil, invalid(f.Name, "must be a boolean")
}

func bitOf(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func normalizeDate(raw interface{}, f Field) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, invalid(f.Name, "must be a date (YYYY-MM-DD)")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, s); err == nil {
		return s, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(dateLayout), nil
	}
	return nil, invalid(f.Name, "must be a date (YYYY-MM-DD)")
}

func normalizeEnum(raw interface{}, f Field) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, invalid(f.Name, "must be one of: "+strings.Join(f.Enum, ", "))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, allowed := range f.Enum {
		if s == allowed {
			return s, nil
		}
	}
	return nil, invalid(f.Name, "must be one of: "+strings.Join(f.Enum, ", "))
}

func normalizeStructured(raw interface{}, f Field) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && (strings.TrimSpace(s) == "" || strings.TrimSpace(s) == "null") {
		return nil, nil
	}
	encoded, err := f.Decode(raw)
	if err != nil {
		return nil, invalid(f.Name, err.Error())
	}
	return encoded, nil
}
