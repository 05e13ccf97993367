package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/revalto/review-platform/internal/models"
)

// CreateUserWithProfile создает учетную запись и профиль обычного
// пользователя одной транзакцией: частичное применение (учетка без
// профиля) недопустимо.
func (s *Storage) CreateUserWithProfile(ctx context.Context, user models.User, profile models.RegularUser) (*models.RegularUser, error) {
	const op = "storage.CreateUserWithProfile"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		user.Email, user.PasswordHash, user.Role).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created := profile
	created.UserID = userID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO regular_users (user_id, first_name, middle_name, last_name, full_name,
		     contact_number, address, profile_photo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		userID, profile.FirstName, profile.MiddleName, profile.LastName, profile.FullName,
		profile.ContactNumber, profile.Address, profile.ProfilePhoto).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// CreateAdminWithProfile создает учетную запись и профиль администратора
// одной транзакцией.
func (s *Storage) CreateAdminWithProfile(ctx context.Context, user models.User, profile models.Admin) (*models.Admin, error) {
	const op = "storage.CreateAdminWithProfile"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		user.Email, user.PasswordHash, user.Role).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created := profile
	created.UserID = userID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO admins (user_id, first_name, middle_name, last_name, full_name, profile_photo)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		userID, profile.FirstName, profile.MiddleName, profile.LastName, profile.FullName,
		profile.ProfilePhoto).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetUserByEmail возвращает неудаленного пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	u := &models.User{}
	var deletedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, is_deleted, deleted_at, created_at
		 FROM users
		 WHERE email = $1 AND is_deleted = FALSE`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsDeleted, &deletedAt, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"

	u := &models.User{}
	var deletedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, is_deleted, deleted_at, created_at
		 FROM users
		 WHERE id = $1`, userID).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsDeleted, &deletedAt, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return u, nil
}

// GetRegularUserByUserID возвращает профиль обычного пользователя
// по ID учетной записи.
func (s *Storage) GetRegularUserByUserID(ctx context.Context, userID string) (*models.RegularUser, error) {
	const op = "storage.GetRegularUserByUserID"

	p := &models.RegularUser{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, first_name, middle_name, last_name, full_name,
		     contact_number, address, profile_photo, created_at
		 FROM regular_users
		 WHERE user_id = $1`, userID).
		Scan(&p.ID, &p.UserID, &p.FirstName, &p.MiddleName, &p.LastName, &p.FullName,
			&p.ContactNumber, &p.Address, &p.ProfilePhoto, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetAdminByUserID возвращает профиль администратора по ID учетной записи.
func (s *Storage) GetAdminByUserID(ctx context.Context, userID string) (*models.Admin, error) {
	const op = "storage.GetAdminByUserID"

	a := &models.Admin{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, first_name, middle_name, last_name, full_name, profile_photo, created_at
		 FROM admins
		 WHERE user_id = $1`, userID).
		Scan(&a.ID, &a.UserID, &a.FirstName, &a.MiddleName, &a.LastName, &a.FullName,
			&a.ProfilePhoto, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// UpdateRegularUserProfile обновляет профиль; full_name приходит уже
// собранным сервисным слоем.
func (s *Storage) UpdateRegularUserProfile(ctx context.Context, profile models.RegularUser) error {
	const op = "storage.UpdateRegularUserProfile"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE regular_users
		 SET first_name = $1, middle_name = $2, last_name = $3, full_name = $4,
		     contact_number = $5, address = $6, profile_photo = $7
		 WHERE id = $8`,
		profile.FirstName, profile.MiddleName, profile.LastName, profile.FullName,
		profile.ContactNumber, profile.Address, profile.ProfilePhoto, profile.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SoftDeleteUser помечает удаленной учетную запись вместе с ее профилем
// одной транзакцией.
func (s *Storage) SoftDeleteUser(ctx context.Context, userID string) error {
	const op = "storage.SoftDeleteUser"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET is_deleted = TRUE, deleted_at = $1 WHERE id = $2 AND is_deleted = FALSE`,
		now, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE regular_users SET is_deleted = TRUE, deleted_at = $1 WHERE user_id = $2`,
		now, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
