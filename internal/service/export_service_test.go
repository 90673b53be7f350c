package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/resource-planner-api/internal/models"
	appErrors "github.com/noah-isme/resource-planner-api/pkg/errors"
)

type stubSnapshotSource struct {
	snapshot models.PlannerSnapshot
	projects []models.Project
}

func (s *stubSnapshotSource) Snapshot() models.PlannerSnapshot { return s.snapshot }
func (s *stubSnapshotSource) Projects() []models.Project       { return s.projects }

type stubFileStorage struct {
	saved       map[string][]byte
	saveErr     error
	cleanupTTL  time.Duration
	cleanupErr  error
	removedList []string
}

func (s *stubFileStorage) Save(filename string, data []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[filename] = data
	return filename, nil
}

func (s *stubFileStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	s.cleanupTTL = ttl
	if s.cleanupErr != nil {
		return nil, s.cleanupErr
	}
	return s.removedList, nil
}

func exportFixture(t *testing.T) *stubSnapshotSource {
	t.Helper()
	employee := models.Employee{ID: "e1", FullName: "Ana", WeeklyCapacity: 40}
	alloc := allocation("a1", "e1", "2026-01-05", "2026-01-07", 20, t)
	return &stubSnapshotSource{
		snapshot: models.PlannerSnapshot{
			GeneratedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Allocations: []models.Allocation{alloc},
			Conflicts: []models.Conflict{{
				ID:            "overallocation:a1",
				Kind:          models.ConflictKindOverallocation,
				AllocationIDs: []string{"a1"},
				Message:       "Ana is allocated 50.0h against a capacity of 40.0h",
				Severity:      models.ConflictSeverityMedium,
			}},
			Lanes: []models.ResourceLane{{
				Employee:    employee,
				Allocations: []models.Allocation{alloc},
				TotalHours:  20,
				Capacity:    40,
				Utilization: 50,
			}},
		},
		projects: []models.Project{{ID: "proj-1", Name: "Atlas"}},
	}
}

func TestExportServiceGenerateJSON(t *testing.T) {
	storage := &stubFileStorage{}
	svc := NewExportService(exportFixture(t), storage, nil)

	result, err := svc.Generate(ExportFormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "planner-20260310-120000.json", result.Filename)
	assert.Equal(t, "application/json", result.ContentType)

	var decoded models.PlannerSnapshot
	require.NoError(t, json.Unmarshal(result.Data, &decoded))
	assert.Len(t, decoded.Allocations, 1)
	assert.Len(t, decoded.Conflicts, 1)
	assert.Len(t, decoded.Lanes, 1)

	// A copy lands in storage.
	assert.Contains(t, storage.saved, result.Filename)
}

func TestExportServiceDefaultsToJSON(t *testing.T) {
	svc := NewExportService(exportFixture(t), nil, nil)

	result, err := svc.Generate("")
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc := NewExportService(exportFixture(t), nil, nil)

	result, err := svc.Generate(ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	body := string(result.Data)
	assert.Contains(t, body, "# Allocations")
	assert.Contains(t, body, "# Conflicts")
	assert.Contains(t, body, "# Lanes")
	// Employee and project ids are resolved to display names.
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "Atlas")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc := NewExportService(exportFixture(t), nil, nil)

	result, err := svc.Generate(ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	require.NotEmpty(t, result.Data)
	assert.Equal(t, "%PDF", string(result.Data[:4]))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(exportFixture(t), nil, nil)

	_, err := svc.Generate("xml")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceSaveFailureStillReturnsBytes(t *testing.T) {
	storage := &stubFileStorage{saveErr: errors.New("disk full")}
	svc := NewExportService(exportFixture(t), storage, nil)

	result, err := svc.Generate(ExportFormatJSON)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
}

func TestExportServiceCleanup(t *testing.T) {
	storage := &stubFileStorage{removedList: []string{"planner-old.json"}}
	svc := NewExportService(exportFixture(t), storage, nil)

	svc.Cleanup(24 * time.Hour)
	assert.Equal(t, 24*time.Hour, storage.cleanupTTL)
}
