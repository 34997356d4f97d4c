package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/vantage-apps/keystone/internal/model"
)

// ErrNotFound is returned by updates and deletes that matched no row.
var ErrNotFound = errors.New("user not found")

// inserts a new user into the table, returns the new user ID.
func (s *pgStore) CreateUser(name, email, hashedPassword string) (int, error) {
	query := `
	INSERT INTO users (name, email, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, name, email, hashedPassword).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches a user by email. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, name, email, password_hash, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	err := s.db.Get(&u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, name, email, password_hash, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := s.db.Get(&u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// overwrites a user's name and email and bumps updated_at. The password hash
// is left as it is. Returns ErrNotFound when the ID matches no row.
func (s *pgStore) UpdateUserProfile(id int, name, email string) error {
	query := `
	UPDATE users
	SET name = $2,
	email = $3,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := s.db.Exec(query, id, name, email)
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// overwrites name, email and the password hash in a single statement.
// Returns ErrNotFound when the ID matches no row.
func (s *pgStore) UpdateUserCredentials(id int, name, email, hashedPassword string) error {
	query := `
	UPDATE users
	SET name = $2,
	email = $3,
	password_hash = $4,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := s.db.Exec(query, id, name, email, hashedPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to update user credentials")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// removes the row with the given ID, returning how many rows went away.
func (s *pgStore) DeleteUser(id int) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete user")
		return 0, err
	}
	return res.RowsAffected()
}
