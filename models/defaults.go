package models

import "encoding/json"

// Department is an organizational partition records belong to.
type Department struct {
	ID   string
	Name string
}

// Departments is the fixed set of partitions known to the dashboard.
var Departments = []Department{
	{ID: "DEPT-1", Name: "North Region"},
	{ID: "DEPT-2", Name: "Central Region"},
	{ID: "DEPT-3", Name: "South Region"},
}

// DepartmentName returns the display name of the partition with the given id,
// or the id itself when it is unknown.
func DepartmentName(id string) string {
	if id == PartitionAll {
		return "All departments"
	}
	for _, d := range Departments {
		if d.ID == id {
			return d.Name
		}
	}
	return id
}

// DefaultDataset returns the built-in dataset a first run starts from.
// Every call returns fresh slices.
func DefaultDataset() Snapshot {
	projects := []Project{
		{
			ID:           "PJ000101",
			Name:         "Riverside Apartment Renovation",
			Client:       "Chen Family",
			Location:     "Riverside Rd. 12",
			Status:       ProjectStatusInProgress,
			Progress:     45,
			Budget:       1250000,
			StartDate:    "2026-03-01",
			EndDate:      "2026-08-30",
			DepartmentID: "DEPT-1",
			Expenses: []json.RawMessage{
				json.RawMessage(`{"id":"EX-1","category":"Materials","amount":180000}`),
			},
		},
		{
			ID:           "PJ000102",
			Name:         "Harbor Office Fit-out",
			Client:       "Harbor Logistics",
			Location:     "Pier 4",
			Status:       ProjectStatusPlanning,
			Progress:     10,
			Budget:       2400000,
			StartDate:    "2026-05-15",
			EndDate:      "2026-12-20",
			DepartmentID: "DEPT-2",
		},
		{
			ID:           "PJ000103",
			Name:         "Hillside Villa Kitchen",
			Client:       "Mrs. Lin",
			Location:     "Hillside Ln. 7",
			Status:       ProjectStatusNegotiating,
			Progress:     0,
			Budget:       560000,
			DepartmentID: "DEPT-3",
		},
		{
			ID:           "PJ000104",
			Name:         "Old Town Storefront",
			Client:       "Sunrise Bakery",
			Location:     "Market St. 3",
			Status:       ProjectStatusCompleted,
			Progress:     100,
			Budget:       380000,
			StartDate:    "2025-11-01",
			EndDate:      "2026-01-15",
			DepartmentID: "DEPT-1",
		},
	}
	for i := range projects {
		projects[i] = projects[i].Normalize()
	}

	return Snapshot{
		Projects:    projects,
		Customers:   []Customer{},
		TeamMembers: []TeamMember{},
	}
}
