package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/resource-planner-api/internal/models"
)

func TestComputeLanesEveryEmployeeGetsALane(t *testing.T) {
	employees := []models.Employee{
		{ID: "e1", FullName: "Ana", WeeklyCapacity: 40},
		{ID: "e2", FullName: "Ben", WeeklyCapacity: 40},
	}
	allocations := []models.Allocation{
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 20, t),
	}

	lanes := ComputeLanes(employees, allocations)
	require.Len(t, lanes, 2)

	assert.Equal(t, "e1", lanes[0].Employee.ID)
	assert.Len(t, lanes[0].Allocations, 1)
	assert.Equal(t, 20.0, lanes[0].TotalHours)

	assert.Equal(t, "e2", lanes[1].Employee.ID)
	assert.NotNil(t, lanes[1].Allocations)
	assert.Empty(t, lanes[1].Allocations)
	assert.Equal(t, 0.0, lanes[1].TotalHours)
	assert.Equal(t, 0, lanes[1].Utilization)
}

func TestComputeLanesSortsAllocationsByStartThenID(t *testing.T) {
	employees := []models.Employee{{ID: "e1", WeeklyCapacity: 40}}
	allocations := []models.Allocation{
		allocation("a3", "e1", "2026-01-07", "2026-01-08", 5, t),
		allocation("a2", "e1", "2026-01-05", "2026-01-06", 5, t),
		allocation("a1", "e1", "2026-01-05", "2026-01-06", 5, t),
	}

	lanes := ComputeLanes(employees, allocations)
	require.Len(t, lanes, 1)
	require.Len(t, lanes[0].Allocations, 3)
	assert.Equal(t, "a1", lanes[0].Allocations[0].ID)
	assert.Equal(t, "a2", lanes[0].Allocations[1].ID)
	assert.Equal(t, "a3", lanes[0].Allocations[2].ID)
}

func TestComputeLanesUtilizationRounding(t *testing.T) {
	employees := []models.Employee{{ID: "e1", WeeklyCapacity: 30}}
	allocations := []models.Allocation{
		allocation("a1", "e1", "2026-01-05", "2026-01-06", 10, t),
	}

	lanes := ComputeLanes(employees, allocations)
	require.Len(t, lanes, 1)
	// 10/30 = 33.33 -> rounds to 33
	assert.Equal(t, 33, lanes[0].Utilization)
}

func TestComputeLanesUtilizationCanExceedHundred(t *testing.T) {
	employees := []models.Employee{{ID: "e1", WeeklyCapacity: 40}}
	allocations := []models.Allocation{
		allocation("a1", "e1", "2026-01-05", "2026-01-06", 60, t),
	}

	lanes := ComputeLanes(employees, allocations)
	require.Len(t, lanes, 1)
	assert.Equal(t, 150, lanes[0].Utilization)
}

func TestComputeLanesZeroCapacity(t *testing.T) {
	employees := []models.Employee{{ID: "e1", WeeklyCapacity: 0}}
	allocations := []models.Allocation{
		allocation("a1", "e1", "2026-01-05", "2026-01-06", 10, t),
	}

	lanes := ComputeLanes(employees, allocations)
	require.Len(t, lanes, 1)
	assert.Equal(t, 0, lanes[0].Utilization)
	assert.Equal(t, 10.0, lanes[0].TotalHours)
}
