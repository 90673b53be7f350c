package models

import "time"

// Employee is a read-only reference entity supplied by the roster; the
// planning engine never mutates it.
type Employee struct {
	ID             string    `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	WeeklyCapacity float64   `db:"weekly_capacity" json:"weekly_capacity"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// EmployeeFilter describes query params for listing employees.
type EmployeeFilter struct {
	Search    string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
