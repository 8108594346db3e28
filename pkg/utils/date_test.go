package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2020-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC), *date)

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("10/03/2020")
	assert.Error(t, err)
}

func TestTodayIn(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC ainda é o dia anterior em São Paulo
	now := time.Date(2020, 3, 10, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2020, 3, 9, 0, 0, 0, 0, time.UTC), TodayIn(now, saoPaulo))
	assert.Equal(t, time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC), TodayIn(now, time.UTC))
	assert.Equal(t, time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC), TodayIn(now, nil))
}

func TestMicrosToUnits(t *testing.T) {
	assert.Equal(t, 1.5, MicrosToUnits(1_500_000))
	assert.Equal(t, 0.0, MicrosToUnits(0))
}
