package dateutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-22")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("22/09/2025")
	assert.Error(t, err)
}

func TestIsStrictlyBefore(t *testing.T) {
	reform := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	ist := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"Day before", time.Date(2025, 9, 21, 23, 59, 0, 0, time.UTC), true},
		{"Same day midnight", reform, false},
		{"Same day evening", time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC), false},
		{"Same calendar day in IST", time.Date(2025, 9, 22, 1, 0, 0, 0, ist), false},
		{"Day after", time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrictlyBefore(tt.at, reform))
		})
	}
}

func TestAssessmentYearFor(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"April starts the year", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "AY2026-27"},
		{"March closes the year", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), "AY2026-27"},
		{"Before April", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), "AY2025-26"},
		{"Century rollover", time.Date(2098, 6, 1, 0, 0, 0, 0, time.UTC), "AY2099-00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessmentYearFor(tt.at))
		})
	}
}

func TestNormalizeAssessmentYear(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"AY2026-27", "AY2026-27", false},
		{"ay 2026-27", "AY2026-27", false},
		{"2026-27", "AY2026-27", false},
		{"2026-2027", "AY2026-27", false},
		{"2026", "AY2026-27", false},
		{" AY2025-26 ", "AY2025-26", false},
		{"2026-28", "", true},
		{"FY2025-26", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeAssessmentYear(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateCodecs(t *testing.T) {
	type wrapper struct {
		On Date `yaml:"date" json:"date"`
	}

	var w wrapper
	require.NoError(t, yaml.Unmarshal([]byte("date: 2025-09-22\n"), &w))
	assert.Equal(t, NewDate(2025, time.September, 22), w.On)

	out, err := yaml.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, "date: \"2025-09-22\"\n", string(out))

	var j wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-09-21"}`), &j))
	assert.Equal(t, "2025-09-21", j.On.String())

	data, err := json.Marshal(j)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-09-21"}`, string(data))

	var empty wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &empty))
	assert.True(t, empty.On.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"tomorrow"}`), &j))
}
