package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID fills an empty primary key before insert.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (b *Business) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

func (r *AvailabilityRule) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

func (b *BlockedDate) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
