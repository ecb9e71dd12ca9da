package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const driverRole = "driver"

type Employee struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	JoinedDate  time.Time `json:"joined_date"`
	Roles       []string  `json:"roles"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsDriver matches any role whose name contains "driver", ignoring case,
// so "Driver Trainee" counts as a driver too.
func (e Employee) IsDriver() bool {
	for _, role := range e.Roles {
		if strings.Contains(strings.ToLower(role), driverRole) {
			return true
		}
	}
	return false
}

type Customer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
