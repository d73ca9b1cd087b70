package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bcerrors "bikecast/pkg/errors"
)

func TestLoadWellFormedFile(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "bike_sharing.csv"), ',', true)
	require.NoError(t, err)
	require.Len(t, d, 20)

	first := d[0]
	assert.Equal(t, 1.0, first.Season)
	assert.Equal(t, 1.0, first.Month)
	assert.Equal(t, 0.0, first.Hour)
	assert.Equal(t, 6.0, first.Weekday)
	assert.Equal(t, 3.28, first.Temperature)
	assert.Equal(t, 81.0, first.Humidity)
	assert.False(t, first.RentalType)

	// Negative temperatures parse.
	assert.Equal(t, -2.0, d[11].Temperature)
	assert.False(t, d[11].RentalType)
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), ',', true)
	require.Error(t, err)
	assert.True(t, bcerrors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestLoadRejectsShortRow(t *testing.T) {
	path := writeTemp(t, "season,month,hour,holiday,weekday,workingday,weathercondition,temperature,humidity,windspeed,rentaltype\n1,2,3\n")
	_, err := Load(path, ',', true)
	require.Error(t, err)

	var se *bcerrors.SchemaError
	assert.True(t, bcerrors.As(err, &se))
}

func TestLoadRejectsBadNumericField(t *testing.T) {
	path := writeTemp(t, "h\n1,1,0,0,6,0,1,abc,81.0,0.0,0\n")
	_, err := Load(path, ',', true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestLoadRejectsBadLabel(t *testing.T) {
	path := writeTemp(t, "h\n1,1,0,0,6,0,1,3.0,81.0,0.0,maybe\n")
	_, err := Load(path, ',', true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rentaltype")
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "season,month,hour,holiday,weekday,workingday,weathercondition,temperature,humidity,windspeed,rentaltype\n")
	_, err := Load(path, ',', true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestParseLabelEncodings(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0", false},
		{"1", true},
		{"false", false},
		{"true", true},
		{"TRUE", true},
		{" 1 ", true},
	}
	for _, tc := range cases {
		got, err := parseLabel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseLabel("2")
	assert.Error(t, err)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
