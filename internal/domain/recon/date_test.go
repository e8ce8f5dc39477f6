package recon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", d.String())

	_, err = ParseDate("10/03/2026")
	assert.Error(t, err)
}

func TestDiffDays(t *testing.T) {
	a := NewDate(2026, 3, 10)
	b := NewDate(2026, 3, 12)

	assert.Equal(t, -2, a.DiffDays(b))
	assert.Equal(t, 2, b.DiffDays(a))
	assert.Equal(t, 0, a.DiffDays(a))
}

func TestDiffDays_AcrossMonthBoundary(t *testing.T) {
	a := NewDate(2026, 2, 28)
	b := NewDate(2026, 3, 1)

	assert.Equal(t, -1, a.DiffDays(b))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, 3, 10)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}
