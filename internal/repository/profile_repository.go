package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/americanreliabletech/support-portal/internal/domain"
)

// ProfileRepository defines persistence access for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	Update(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	ListTechnicians(ctx context.Context) ([]domain.UserProfile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO user_profiles (full_name, email, phone, company, role, avatar_url, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.Company,
		profile.Role,
		profile.AvatarURL,
		profile.PasswordHash,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        UPDATE user_profiles SET full_name=$1, email=$2, phone=$3, company=$4, role=$5,
            avatar_url=$6, password_hash=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.Company,
		profile.Role,
		profile.AvatarURL,
		profile.PasswordHash,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	const query = `
        SELECT id, full_name, email, phone, company, role, avatar_url, password_hash, created_at, updated_at
        FROM user_profiles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	const query = `
        SELECT id, full_name, email, phone, company, role, avatar_url, password_hash, created_at, updated_at
        FROM user_profiles WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

// ListTechnicians returns profiles assignable to tickets, sorted by name.
func (r *profileRepository) ListTechnicians(ctx context.Context) ([]domain.UserProfile, error) {
	const query = `
        SELECT id, full_name, email, phone, company, role, avatar_url, password_hash, created_at, updated_at
        FROM user_profiles WHERE role IN ('admin','user') ORDER BY full_name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserProfile
	for rows.Next() {
		var profile domain.UserProfile
		if err := scanProfile(rows, &profile); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}

func (r *profileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := scanProfile(r.pool.QueryRow(ctx, query, arg), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func scanProfile(row pgx.Row, profile *domain.UserProfile) error {
	return row.Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.Company,
		&profile.Role,
		&profile.AvatarURL,
		&profile.PasswordHash,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}
