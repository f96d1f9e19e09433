package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBit_ValueAndScan(t *testing.T) {
	v, err := Bit(true).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = Bit(false).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	var b Bit
	require.NoError(t, b.Scan(int64(1)))
	assert.True(t, bool(b))
	require.NoError(t, b.Scan([]byte("0")))
	assert.False(t, bool(b))
	require.NoError(t, b.Scan("1"))
	assert.True(t, bool(b))
	require.NoError(t, b.Scan(nil))
	assert.False(t, bool(b))
	assert.Error(t, b.Scan(3.5))
}

func TestWorkingPlaces_RoundTrip(t *testing.T) {
	original := WorkingPlaces{
		VenueHospital: {
			{Name: "City Hospital", Days: []string{"Monday", "Wednesday"}, StartTime: "10:00", EndTime: "18:00"},
		},
	}

	stored, err := original.Value()
	require.NoError(t, err)
	assert.IsType(t, "", stored)

	var decoded WorkingPlaces
	require.NoError(t, decoded.Scan(stored))
	assert.Equal(t, original, decoded)

	var fromBytes WorkingPlaces
	require.NoError(t, fromBytes.Scan([]byte(stored.(string))))
	assert.Equal(t, original, fromBytes)
}

func TestWorkingPlaces_NullAndInvalid(t *testing.T) {
	var w WorkingPlaces
	v, err := w.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, w.Scan(nil))
	assert.Nil(t, w)

	assert.Error(t, w.Scan("not json"))
	assert.Error(t, w.Scan(42))
}

func TestExperienceHistory_RoundTrip(t *testing.T) {
	original := ExperienceHistory{
		{"hospital": "General Hospital", "role": "Resident", "years": "2015-2018"},
		{"hospital": "City Clinic", "role": "Consultant", "current": true},
	}

	stored, err := original.Value()
	require.NoError(t, err)

	var decoded ExperienceHistory
	require.NoError(t, decoded.Scan(stored))
	assert.Equal(t, original, decoded)
}

func TestBit_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		On  Bit `json:"on"`
		Off Bit `json:"off"`
	}{On: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":1,"off":0}`, string(raw))

	var b Bit
	for input, want := range map[string]Bit{`true`: true, `false`: false, `1`: true, `0`: false, `"1"`: true, `null`: false} {
		require.NoError(t, json.Unmarshal([]byte(input), &b), input)
		assert.Equal(t, want, b, input)
	}
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &b))
}

func TestDoctor_ConsultationFeeIsJSONNumber(t *testing.T) {
	raw, err := json.Marshal(Doctor{ConsultationFee: decimal.NewNullDecimal(decimal.RequireFromString("500.50"))})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"consultation_fee":500.5`)

	raw, err = json.Marshal(Doctor{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"consultation_fee":null`)

	var d Doctor
	require.NoError(t, json.Unmarshal([]byte(`{"consultation_fee":750.25}`), &d))
	assert.True(t, d.ConsultationFee.Valid)
	assert.Equal(t, "750.25", d.ConsultationFee.Decimal.String())
}
