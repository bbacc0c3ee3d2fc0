package repository

import "github.com/slodongo/kgl-api/internal/domain/entity"

// UserRepository is the persistence port for User. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail matches case-insensitively; emails are stored lowercase.
	GetByEmail(email string) (*entity.User, error)
}
