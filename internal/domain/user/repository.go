package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/booking-slots/internal/models"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	// FindByEmail returns ErrNotFound when no user has the address.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}
