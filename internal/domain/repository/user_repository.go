package repository

import "github.com/simindustries/bizdocs-api/internal/domain/entity"

// UserRepository is the persistence port for application logins.
type UserRepository interface {
	FindByUsername(username string) (*entity.User, error)
	GetByID(userID int64) (*entity.User, error)
}
