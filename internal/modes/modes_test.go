package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_ReturnsCopyInDefinitionOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 9)
	assert.Equal(t, Walk, all[0].Key)
	assert.Equal(t, Flight, all[len(all)-1].Key)

	all[0].EmissionFactor = 99
	again := All()
	assert.Zero(t, again[0].EmissionFactor)
}

func TestDefinitions_UniqueKeysNonNegativeFactors(t *testing.T) {
	seen := make(map[Key]bool)
	for _, d := range All() {
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true
		assert.GreaterOrEqual(t, d.EmissionFactor, 0.0, d.Key)
		assert.NotEmpty(t, d.Label)
		assert.NotEmpty(t, d.Icon)
	}
}

func TestLookup(t *testing.T) {
	car, ok := Lookup(Car)
	require.True(t, ok)
	assert.InDelta(t, 0.192, car.EmissionFactor, 1e-9)

	_, ok = Lookup(Key("hovercraft"))
	assert.False(t, ok)

	assert.Equal(t, 0, Order(Walk))
	assert.Equal(t, -1, Order(Key("hovercraft")))
}

func TestParsePurpose(t *testing.T) {
	tests := []struct {
		in      string
		want    Purpose
		wantErr bool
	}{
		{"daily", PurposeDaily, false},
		{"Daily-Commute", PurposeDaily, false},
		{" casual ", PurposeCasual, false},
		{"work-business", PurposeWork, false},
		{"LONG", PurposeLong, false},
		{"long-journey", PurposeLong, false},
		{"holiday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePurpose(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownPurpose)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestPurposeLabel(t *testing.T) {
	assert.Equal(t, "Daily commute", PurposeDaily.Label())
	assert.Equal(t, "Long journey", PurposeLong.Label())
	assert.Equal(t, "other", Purpose("other").Label())
	assert.False(t, Purpose("other").Valid())
}
