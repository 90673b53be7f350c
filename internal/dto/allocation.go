package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date accepts both plain calendar dates ("2025-03-10") and RFC 3339
// timestamps on input and always marshals as a calendar date.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// ParseDate parses a calendar date or RFC 3339 timestamp into a UTC day.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, day := t.UTC().Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// AllocationFields is the partial-update payload for an allocation. Two
// upstream planner clients send different key casings (the API uses
// snake_case, the legacy calendar client camelCase); UnmarshalJSON
// normalizes both into this one canonical shape so nothing downstream
// reasons about optional/either representations.
type AllocationFields struct {
	EmployeeID     *string
	ProjectID      *string
	StartDate      *time.Time
	EndDate        *time.Time
	AllocatedHours *float64
	Role           *string
	Status         *string
	Active         *bool
	Notes          *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *AllocationFields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(keys ...string) (json.RawMessage, bool) {
		for _, key := range keys {
			if v, ok := raw[key]; ok {
				return v, true
			}
		}
		return nil, false
	}

	if v, ok := pick("employee_id", "employeeId"); ok {
		if err := json.Unmarshal(v, &f.EmployeeID); err != nil {
			return fmt.Errorf("employee_id: %w", err)
		}
	}
	if v, ok := pick("project_id", "projectId"); ok {
		if err := json.Unmarshal(v, &f.ProjectID); err != nil {
			return fmt.Errorf("project_id: %w", err)
		}
	}
	if v, ok := pick("start_date", "startDate"); ok {
		t, err := unmarshalDate(v)
		if err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
		f.StartDate = t
	}
	if v, ok := pick("end_date", "endDate"); ok {
		t, err := unmarshalDate(v)
		if err != nil {
			return fmt.Errorf("end_date: %w", err)
		}
		f.EndDate = t
	}
	if v, ok := pick("allocated_hours", "allocatedHours", "hours"); ok {
		if err := json.Unmarshal(v, &f.AllocatedHours); err != nil {
			return fmt.Errorf("allocated_hours: %w", err)
		}
	}
	if v, ok := pick("role"); ok {
		if err := json.Unmarshal(v, &f.Role); err != nil {
			return fmt.Errorf("role: %w", err)
		}
	}
	if v, ok := pick("status"); ok {
		if err := json.Unmarshal(v, &f.Status); err != nil {
			return fmt.Errorf("status: %w", err)
		}
	}
	if v, ok := pick("active", "isActive"); ok {
		if err := json.Unmarshal(v, &f.Active); err != nil {
			return fmt.Errorf("active: %w", err)
		}
	}
	if v, ok := pick("notes"); ok {
		if err := json.Unmarshal(v, &f.Notes); err != nil {
			return fmt.Errorf("notes: %w", err)
		}
	}

	return nil
}

// Empty reports whether no field was supplied.
func (f AllocationFields) Empty() bool {
	return f.EmployeeID == nil && f.ProjectID == nil && f.StartDate == nil &&
		f.EndDate == nil && f.AllocatedHours == nil && f.Role == nil &&
		f.Status == nil && f.Active == nil && f.Notes == nil
}

func unmarshalDate(data json.RawMessage) (*time.Time, error) {
	var d Date
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	t := d.Time
	return &t, nil
}
