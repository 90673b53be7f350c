package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/resource-planner-api/internal/models"
	"github.com/noah-isme/resource-planner-api/pkg/export"
	appErrors "github.com/noah-isme/resource-planner-api/pkg/errors"
)

// ExportFormat selects the export rendering.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
)

type snapshotSource interface {
	Snapshot() models.PlannerSnapshot
	Projects() []models.Project
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	RenderSections(title string, sections []export.Section) ([]byte, error)
}

// ExportResult captures one rendered export.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ExportService renders the planner's current state into JSON, delimited
// text or PDF and keeps a copy under the export storage directory.
type ExportService struct {
	planner snapshotSource
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(planner snapshotSource, storage fileStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		planner: planner,
		storage: storage,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// Generate renders the current allocations, conflicts and lanes.
func (s *ExportService) Generate(format ExportFormat) (*ExportResult, error) {
	snapshot := s.planner.Snapshot()
	stamp := snapshot.GeneratedAt.Format("20060102-150405")

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch format {
	case ExportFormatJSON, "":
		data, err = json.MarshalIndent(snapshot, "", "  ")
		filename = fmt.Sprintf("planner-%s.json", stamp)
		contentType = "application/json"
	case ExportFormatCSV:
		data, err = s.renderCSV(snapshot)
		filename = fmt.Sprintf("planner-%s.csv", stamp)
		contentType = "text/csv"
	case ExportFormatPDF:
		data, err = s.pdf.RenderSections("Resource Plan", s.sections(snapshot))
		filename = fmt.Sprintf("planner-%s.pdf", stamp)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	if s.storage != nil {
		if _, saveErr := s.storage.Save(filename, data); saveErr != nil {
			// The caller still gets the bytes; only the archived copy is lost.
			s.logger.Warn("save export copy", zap.String("filename", filename), zap.Error(saveErr))
		}
	}

	return &ExportResult{Filename: filename, ContentType: contentType, Data: data}, nil
}

// Cleanup removes archived exports older than ttl.
func (s *ExportService) Cleanup(ttl time.Duration) {
	if s.storage == nil {
		return
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Warn("cleanup exports", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("cleaned up exports", zap.Int("removed", len(removed)))
	}
}

func (s *ExportService) renderCSV(snapshot models.PlannerSnapshot) ([]byte, error) {
	var parts []string
	for _, section := range s.sections(snapshot) {
		rendered, err := s.csv.Render(section.Dataset)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "# "+section.Title+"\n"+string(rendered))
	}
	return []byte(strings.Join(parts, "\n")), nil
}

func (s *ExportService) sections(snapshot models.PlannerSnapshot) []export.Section {
	projects := make(map[string]string)
	for _, p := range s.planner.Projects() {
		projects[p.ID] = p.Name
	}
	employees := make(map[string]string)
	for _, lane := range snapshot.Lanes {
		employees[lane.Employee.ID] = lane.Employee.FullName
	}

	allocations := export.Dataset{
		Headers: []string{"ID", "Employee", "Project", "Start", "End", "Hours", "Role", "Status"},
	}
	for _, a := range snapshot.Allocations {
		employee := a.EmployeeID
		if name := employees[a.EmployeeID]; name != "" {
			employee = name
		}
		project := a.ProjectID
		if name := projects[a.ProjectID]; name != "" {
			project = name
		}
		allocations.Rows = append(allocations.Rows, map[string]string{
			"ID":       a.ID,
			"Employee": employee,
			"Project":  project,
			"Start":    a.StartDate.Format("2006-01-02"),
			"End":      a.EndDate.Format("2006-01-02"),
			"Hours":    strconv.FormatFloat(a.AllocatedHours, 'f', -1, 64),
			"Role":     a.Role,
			"Status":   string(a.Status),
		})
	}

	conflicts := export.Dataset{
		Headers: []string{"ID", "Kind", "Severity", "Allocations", "Message"},
	}
	for _, c := range snapshot.Conflicts {
		conflicts.Rows = append(conflicts.Rows, map[string]string{
			"ID":          c.ID,
			"Kind":        string(c.Kind),
			"Severity":    string(c.Severity),
			"Allocations": strings.Join(c.AllocationIDs, " "),
			"Message":     c.Message,
		})
	}

	lanes := export.Dataset{
		Headers: []string{"Employee", "Allocations", "Total Hours", "Capacity", "Utilization %"},
	}
	for _, lane := range snapshot.Lanes {
		lanes.Rows = append(lanes.Rows, map[string]string{
			"Employee":      lane.Employee.FullName,
			"Allocations":   strconv.Itoa(len(lane.Allocations)),
			"Total Hours":   strconv.FormatFloat(lane.TotalHours, 'f', -1, 64),
			"Capacity":      strconv.FormatFloat(lane.Capacity, 'f', -1, 64),
			"Utilization %": strconv.Itoa(lane.Utilization),
		})
	}

	return []export.Section{
		{Title: "Allocations", Dataset: allocations},
		{Title: "Conflicts", Dataset: conflicts},
		{Title: "Lanes", Dataset: lanes},
	}
}
