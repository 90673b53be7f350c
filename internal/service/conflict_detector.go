package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/resource-planner-api/internal/models"
)

// DetectConflicts scans the full working set for scheduling violations. It is
// pure and deterministic: the same input yields the same conflicts in the
// same order regardless of input ordering.
//
// Two passes per employee: a pairwise inclusive date-overlap scan, then a
// capacity sum against the employee's weekly capacity. The pairwise scan is
// O(n²) in the allocations of one employee, which is fine at the tens to low
// hundreds this tool sees.
func DetectConflicts(allocations []models.Allocation, employees []models.Employee) []models.Conflict {
	roster := make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		roster[e.ID] = e
	}

	byEmployee := make(map[string][]models.Allocation)
	for _, a := range allocations {
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	conflicts := []models.Conflict{}
	for _, empID := range employeeIDs {
		group := append([]models.Allocation(nil), byEmployee[empID]...)
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })

		label := empID
		if e, ok := roster[empID]; ok && e.FullName != "" {
			label = e.FullName
		}

		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !group[i].Overlaps(group[j]) {
					continue
				}
				ids := []string{group[i].ID, group[j].ID}
				sort.Strings(ids)
				conflicts = append(conflicts, models.Conflict{
					ID:            ConflictID(models.ConflictKindTimeOverlap, ids...),
					Kind:          models.ConflictKindTimeOverlap,
					AllocationIDs: ids,
					Message:       fmt.Sprintf("Allocations %s and %s overlap for %s", ids[0], ids[1], label),
					Severity:      models.ConflictSeverityHigh,
				})
			}
		}

		employee, known := roster[empID]
		if !known {
			continue
		}
		var total float64
		for _, a := range group {
			total += a.AllocatedHours
		}
		if total <= employee.WeeklyCapacity {
			continue
		}
		for _, a := range group {
			conflicts = append(conflicts, models.Conflict{
				ID:            ConflictID(models.ConflictKindOverallocation, a.ID),
				Kind:          models.ConflictKindOverallocation,
				AllocationIDs: []string{a.ID},
				Message:       fmt.Sprintf("%s is allocated %.1fh against a capacity of %.1fh", label, total, employee.WeeklyCapacity),
				Severity:      models.ConflictSeverityMedium,
			})
		}
	}

	return conflicts
}

// ConflictID derives a stable conflict identity from the sorted affected
// allocation ids and the kind, so re-running detection after an unrelated
// mutation does not churn unrelated identities.
func ConflictID(kind models.ConflictKind, allocationIDs ...string) string {
	ids := append([]string(nil), allocationIDs...)
	sort.Strings(ids)
	return string(kind) + ":" + strings.Join(ids, ":")
}
