package timefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTruncatesSubSeconds(t *testing.T) {
	got, err := Normalize("14:30:45.123")
	require.NoError(t, err)
	assert.Equal(t, "14:30:45", got)
}

func TestNormalizePassesThroughWholeSeconds(t *testing.T) {
	got, err := Normalize("08:00:00")
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", got)
}

func TestNormalizeAcceptsHourMinute(t *testing.T) {
	got, err := Normalize("07:55")
	require.NoError(t, err)
	assert.Equal(t, "07:55:00", got)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize("not a time")
	require.Error(t, err)
}

func TestNormalizePtrNil(t *testing.T) {
	got, err := NormalizePtr(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNormalizePtrValue(t *testing.T) {
	in := "23:59:59.999"
	got, err := NormalizePtr(&in)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "23:59:59", *got)
}
