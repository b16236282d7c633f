package academicyear_test

import (
	"testing"
	"time"

	"github.com/Yaseenhassan/college-leave-app/internal/shared/academicyear"

	"github.com/stretchr/testify/assert"
)

func TestForDate(t *testing.T) {
	t.Run("before rollover belongs to previous year", func(t *testing.T) {
		d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2023-2024", academicyear.ForDate(d))
	})

	t.Run("rollover month starts the new year", func(t *testing.T) {
		d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-2025", academicyear.ForDate(d))
	})

	t.Run("december stays in the started year", func(t *testing.T) {
		d := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-2025", academicyear.ForDate(d))
	})
}

func TestValid(t *testing.T) {
	assert.True(t, academicyear.Valid("2024-2025"))
	assert.False(t, academicyear.Valid("2024-2026"))
	assert.False(t, academicyear.Valid("2024"))
	assert.False(t, academicyear.Valid("24-25"))
	assert.False(t, academicyear.Valid("2025-2024"))
}
