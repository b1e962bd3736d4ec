package models

import "time"

type Service struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string `gorm:"type:uuid;index;not null" json:"business_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	DurationMin int    `json:"duration_min"`
	Active      bool   `gorm:"default:true" json:"active"`

	Employees []Employee `gorm:"many2many:service_employees;" json:"employees,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceEmployee is the eligibility relation: which employees may perform a service.
type ServiceEmployee struct {
	ServiceID  string `gorm:"type:uuid;primaryKey" json:"service_id"`
	EmployeeID string `gorm:"type:uuid;primaryKey" json:"employee_id"`
}

func (ServiceEmployee) TableName() string {
	return "service_employees"
}
