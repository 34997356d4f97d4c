// exposes a Store interface that is injected into API modules
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/vantage-apps/keystone/internal/model"
)

type Store interface {
	CreateUser(name, email, hashedPassword string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	// UpdateUserProfile overwrites name and email, leaving the stored
	// password hash untouched.
	UpdateUserProfile(id int, name, email string) error
	// UpdateUserCredentials overwrites name, email and the password hash in
	// one statement.
	UpdateUserCredentials(id int, name, email, hashedPassword string) error
	DeleteUser(id int) (int64, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
