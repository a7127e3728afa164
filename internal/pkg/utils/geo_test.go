package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/site-analysis-service/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		d := utils.HaversineDistance(40.0, -74.0, 40.0, -74.0)
		assert.InDelta(t, 0.0, d, 1e-9)
	})

	t.Run("NYC to Philadelphia is about 130 km", func(t *testing.T) {
		d := utils.HaversineDistance(40.7128, -74.0060, 39.9526, -75.1652)
		assert.InDelta(t, 130.0, d, 10.0)
	})

	t.Run("one degree of latitude is about 111.2 km", func(t *testing.T) {
		d := utils.HaversineDistance(0.0, 0.0, 1.0, 0.0)
		assert.InDelta(t, 111.19, d, 0.1)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := utils.HaversineDistance(41.38, 2.17, 40.42, -3.70)
		d2 := utils.HaversineDistance(40.42, -3.70, 41.38, 2.17)
		assert.Equal(t, d1, d2)
	})
}

func TestKmToRadians(t *testing.T) {
	rad := utils.KmToRadians(utils.EarthRadiusKm)
	assert.InDelta(t, 1.0, rad, 1e-12)

	// Round trip must be exact enough for deterministic re-runs.
	km := 2.0
	assert.Equal(t, km, utils.RadiansToKm(utils.KmToRadians(km)))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(0, 0))
	assert.True(t, utils.ValidateCoordinates(-90, 180))
	assert.True(t, utils.ValidateCoordinates(90, -180))
	assert.False(t, utils.ValidateCoordinates(90.01, 0))
	assert.False(t, utils.ValidateCoordinates(-90.01, 0))
	assert.False(t, utils.ValidateCoordinates(0, 180.01))
	assert.False(t, utils.ValidateCoordinates(0, -180.01))
}
