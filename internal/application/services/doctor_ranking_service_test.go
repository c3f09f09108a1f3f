package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/adapters/database"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

func TestDoctorRanker_SelectLeastLoaded(t *testing.T) {
	ranker := services.NewDoctorRanker(nil)

	t.Run("picks smallest load among eligible", func(t *testing.T) {
		doctors := []entities.DoctorLoad{
			{ID: "a", CurrentLoad: 3, MaxCapacity: 5},
			{ID: "b", CurrentLoad: 1, MaxCapacity: 5},
			{ID: "c", CurrentLoad: 5, MaxCapacity: 5},
		}

		best, ok := ranker.SelectLeastLoaded(doctors)
		require.True(t, ok)
		assert.Equal(t, "b", best.ID)
	})

	t.Run("full roster yields no doctor", func(t *testing.T) {
		doctors := []entities.DoctorLoad{
			{ID: "a", CurrentLoad: 5, MaxCapacity: 5},
		}

		_, ok := ranker.SelectLeastLoaded(doctors)
		assert.False(t, ok)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		doctors := []entities.DoctorLoad{
			{ID: "first", CurrentLoad: 2, MaxCapacity: 5},
			{ID: "second", CurrentLoad: 2, MaxCapacity: 5},
		}

		best, ok := ranker.SelectLeastLoaded(doctors)
		require.True(t, ok)
		assert.Equal(t, "first", best.ID)
	})

	t.Run("empty input yields no doctor", func(t *testing.T) {
		_, ok := ranker.SelectLeastLoaded(nil)
		assert.False(t, ok)
	})
}

func TestDoctorRanker_Recommend(t *testing.T) {
	loads := database.NewStaticDoctorLoadAdapter([]entities.DoctorLoad{
		{ID: "a", Department: "cardiology", CurrentLoad: 4, MaxCapacity: 5},
		{ID: "b", Department: "cardiology", CurrentLoad: 2, MaxCapacity: 5},
		{ID: "c", Department: "dermatology", CurrentLoad: 0, MaxCapacity: 5},
	})
	ranker := services.NewDoctorRanker(loads)

	doctor, ok, err := ranker.Recommend(context.Background(), "cardiology")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", doctor.ID)

	doctor, ok, err = ranker.Recommend(context.Background(), "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", doctor.ID)

	_, ok, err = ranker.Recommend(context.Background(), "radiology")
	require.NoError(t, err)
	assert.False(t, ok)
}
