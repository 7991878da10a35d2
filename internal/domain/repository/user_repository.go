package repository

import (
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

// UserRepository is the persistence port for User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(id string, at time.Time) error
	Delete(id string) error
}
