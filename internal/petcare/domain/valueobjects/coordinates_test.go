package valueobjects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "petcare/internal/petcare/domain/valueobjects"
)

func coords(t *testing.T, lat, lon float64) vo.Coordinates {
	t.Helper()
	c, err := vo.NewCoordinates(lat, lon)
	require.NoError(t, err)
	return c
}

func TestNewCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		err      error
	}{
		{"граничные значения", 90, -180, nil},
		{"широта больше 90", 90.0001, 0, vo.ErrInvalidLatitude},
		{"широта меньше -90", -91, 0, vo.ErrInvalidLatitude},
		{"долгота больше 180", 0, 180.5, vo.ErrInvalidLongitude},
		{"долгота меньше -180", 0, -181, vo.ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vo.NewCoordinates(tt.lat, tt.lon)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCoordinatesDistance(t *testing.T) {
	kyiv := coords(t, 50.4501, 30.5234)
	lviv := coords(t, 49.8397, 24.0297)

	t.Run("Киев - Львов", func(t *testing.T) {
		assert.InDelta(t, 467.53, kyiv.DistanceTo(lviv), 0.01)
	})

	t.Run("симметричность", func(t *testing.T) {
		assert.InDelta(t, kyiv.DistanceTo(lviv), lviv.DistanceTo(kyiv), 1e-9)
	})

	t.Run("расстояние до себя равно нулю", func(t *testing.T) {
		assert.Zero(t, kyiv.DistanceTo(kyiv))
	})

	t.Run("антиподы", func(t *testing.T) {
		north := coords(t, 90, 0)
		south := coords(t, -90, 0)
		assert.InDelta(t, 3.141592653589793*vo.EarthRadiusKm, north.DistanceTo(south), 1e-6)
	})
}

func TestCoordinatesWKTAndEquality(t *testing.T) {
	c := coords(t, 50.4501, 30.5234)
	assert.Equal(t, "POINT(30.523400 50.450100)", c.WKT())

	t.Run("равенство с точностью 6 знаков", func(t *testing.T) {
		near := coords(t, 50.45010000004, 30.52339999996)
		assert.True(t, c.Equals(near))
		assert.Equal(t, vo.Hash(c), vo.Hash(near))
	})

	t.Run("различие в 6 знаке", func(t *testing.T) {
		assert.False(t, c.Equals(coords(t, 50.450101, 30.5234)))
	})

	t.Run("отрицательный и положительный ноль", func(t *testing.T) {
		a := coords(t, -0.0000001, 0)
		b := coords(t, 0, 0)
		assert.True(t, a.Equals(b))
		assert.Equal(t, vo.Hash(a), vo.Hash(b))
	})
}
