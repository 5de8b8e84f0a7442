package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/inspekt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  core.Category
	}{
		{"GroundCables", core.CategoryGroundCables},
		{"ground cables", core.CategoryGroundCables},
		{"Grondkabels", core.CategoryGroundCables},
		{"AERIAL_CABLES", core.CategoryAerialCables},
		{"Luchtkabels", core.CategoryAerialCables},
		{"water-pipes", core.CategoryWaterPipes},
		{"Waterleidingen", core.CategoryWaterPipes},
		{" GasPipes ", core.CategoryGasPipes},
		{"gasleidingen", core.CategoryGasPipes},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := core.ParseCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Free Text Rejected", func(t *testing.T) {
		got, err := core.ParseCategory("sewer stuff")
		assert.True(t, errors.Is(err, core.ErrInvalidCategory))
		assert.Equal(t, core.CategoryUnknown, got)
	})
}

func TestCategoryText(t *testing.T) {
	for _, c := range core.Categories() {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back core.Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	text, err := core.CategoryUnknown.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Unknown", string(text))

	var back core.Category = core.CategoryGasPipes
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, core.CategoryUnknown, back)

	assert.ErrorIs(t, back.UnmarshalText([]byte("Sewers")), core.ErrInvalidCategory)
}

func TestFormStateNormalize(t *testing.T) {
	t.Run("Keeps Text As Typed", func(t *testing.T) {
		tests := []struct {
			input string
			want  string
		}{
			{"  Jan de Vries ", "Jan de Vries"},
			{"x<y and y>z", "x<y and y>z"},
			{"Cable <A1> damaged", "Cable <A1> damaged"},
			{"see <b>note</b>", "see <b>note</b>"},
			{"Cable exposed & damaged", "Cable exposed & damaged"},
		}
		for _, tt := range tests {
			got, err := core.FormState{
				TechnicianName: tt.input,
				Description:    tt.input,
				LocationLabel:  tt.input,
				Category:       core.CategoryGroundCables,
			}.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.TechnicianName)
			assert.Equal(t, tt.want, got.Description)
			assert.Equal(t, tt.want, got.LocationLabel)
		}
	})

	t.Run("Empty Stays Empty", func(t *testing.T) {
		got, err := core.FormState{Description: "   ", Category: core.CategoryGasPipes}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "", got.Description)
	})

	t.Run("Rejects Unknown Category", func(t *testing.T) {
		_, err := core.FormState{}.Normalize()
		assert.ErrorIs(t, err, core.ErrInvalidCategory)
	})
}

func TestClockIsMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	clock := core.NewClock(func() time.Time { return fixed })

	first := clock.Next()
	second := clock.Next()
	assert.Equal(t, core.Token(1_700_000_000_000), first)
	assert.Equal(t, first+1, second, "stalled clock must still advance")

	// A clock stepping backwards keeps counting from the last token.
	fixed = fixed.Add(-time.Hour)
	assert.Equal(t, second+1, clock.Next())
}

func TestTokenTime(t *testing.T) {
	tok := core.Token(1_700_000_000_123)
	assert.Equal(t, "1700000000123", tok.String())
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 123_000_000, time.UTC), tok.Time())
}
