package model

import (
	"strings"

	"github.com/google/uuid"
)

type Truck struct {
	ID                uuid.UUID  `json:"id"`
	Number            string     `json:"number"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
	MainDriverID      *uuid.UUID `json:"main_driver_id,omitempty"`
	SecondaryDriverID *uuid.UUID `json:"secondary_driver_id,omitempty"`

	MainDriver      *Employee `json:"-"`
	SecondaryDriver *Employee `json:"-"`
}

func (t Truck) HasDriver(id uuid.UUID) bool {
	return (t.MainDriverID != nil && *t.MainDriverID == id) ||
		(t.SecondaryDriverID != nil && *t.SecondaryDriverID == id)
}

func (t Truck) DriverIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if t.MainDriverID != nil {
		ids = append(ids, *t.MainDriverID)
	}
	if t.SecondaryDriverID != nil {
		ids = append(ids, *t.SecondaryDriverID)
	}
	return ids
}

// DriversNames joins the names of the resolved drivers, main driver first.
func (t Truck) DriversNames() string {
	names := make([]string, 0, 2)
	for _, driver := range []*Employee{t.MainDriver, t.SecondaryDriver} {
		if driver != nil {
			names = append(names, driver.FullName())
		}
	}
	return strings.Join(names, ", ")
}
