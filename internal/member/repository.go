package member

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const memberColumns = `id, name, email, password_hash, role, membership_type, date_of_birth, created_at`

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role, membershipType string, dateOfBirth *time.Time) (*Member, error) {
	query := `
		INSERT INTO members (name, email, password_hash, role, membership_type, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, name, email, passwordHash, role, membershipType, dateOfBirth)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m,
		`SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`, email)
}

func (r *repository) GetAll(ctx context.Context) ([]Member, error) {
	var members []Member
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return members, nil
}
