package service

import (
	"math"
	"sort"

	"github.com/noah-isme/resource-planner-api/internal/models"
)

// ComputeLanes derives one lane per employee, including employees with no
// allocations. Utilization is the raw rounded percentage and may exceed 100;
// it is 0 when the employee's capacity is 0.
func ComputeLanes(employees []models.Employee, allocations []models.Allocation) []models.ResourceLane {
	byEmployee := make(map[string][]models.Allocation)
	for _, a := range allocations {
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	lanes := make([]models.ResourceLane, 0, len(employees))
	for _, employee := range employees {
		group := append([]models.Allocation(nil), byEmployee[employee.ID]...)
		sort.Slice(group, func(i, j int) bool {
			if !group[i].StartDate.Equal(group[j].StartDate) {
				return group[i].StartDate.Before(group[j].StartDate)
			}
			return group[i].ID < group[j].ID
		})
		if group == nil {
			group = []models.Allocation{}
		}

		var total float64
		for _, a := range group {
			total += a.AllocatedHours
		}

		utilization := 0
		if employee.WeeklyCapacity > 0 {
			utilization = int(math.Round(total / employee.WeeklyCapacity * 100))
		}

		lanes = append(lanes, models.ResourceLane{
			Employee:    employee,
			Allocations: group,
			TotalHours:  total,
			Capacity:    employee.WeeklyCapacity,
			Utilization: utilization,
		})
	}

	return lanes
}
