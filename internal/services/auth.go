package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/revalto/review-platform/internal/lib/fullname"
	"github.com/revalto/review-platform/internal/lib/jwt"
	"github.com/revalto/review-platform/internal/lib/password"
	"github.com/revalto/review-platform/internal/models"
)

// Интерфейс репозитория пользователей
type UserRepository interface {
	CreateUserWithProfile(ctx context.Context, user models.User, profile models.RegularUser) (*models.RegularUser, error)
	CreateAdminWithProfile(ctx context.Context, user models.User, profile models.Admin) (*models.Admin, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetRegularUserByUserID(ctx context.Context, userID string) (*models.RegularUser, error)
	GetAdminByUserID(ctx context.Context, userID string) (*models.Admin, error)
	UpdateRegularUserProfile(ctx context.Context, profile models.RegularUser) error
	SoftDeleteUser(ctx context.Context, userID string) error
}

// AuthService реализует бизнес-логику регистрации, входа и управления
// учетными записями.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает учетную запись с ролью USER и профиль одной транзакцией.
// FullName собирается из частей имени до записи.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.RegularUser, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	profile := models.RegularUser{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		FullName:      fullname.Build(req.FirstName, req.MiddleName, req.LastName),
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	return s.users.CreateUserWithProfile(ctx, user, profile)
}

// RegisterAdmin создает учетную запись с ролью ADMIN и профиль
// администратора одной транзакцией. Доступно только администраторам.
func (s *AuthService) RegisterAdmin(ctx context.Context, req models.DummyRegister) (*models.Admin, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	profile := models.Admin{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		FullName:   fullname.Build(req.FirstName, req.MiddleName, req.LastName),
	}
	return s.users.CreateAdminWithProfile(ctx, user, profile)
}

// Login проверяет пароль и возвращает JWT с user id, email и ролью.
func (s *AuthService) Login(ctx context.Context, req models.DummyLogin) (token, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// GetProfile возвращает профиль обычного пользователя.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.RegularUser, error) {
	profile, err := s.users.GetRegularUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile применяет частичное обновление профиля; FullName
// пересобирается из новых и текущих частей имени.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.DummyProfileUpdate) (*models.RegularUser, error) {
	profile, err := s.users.GetRegularUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	profile.FullName = fullname.BuildWithCurrent(req.FirstName, req.MiddleName, req.LastName,
		profile.FirstName, profile.MiddleName, profile.LastName)
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		profile.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.ContactNumber != nil {
		profile.ContactNumber = *req.ContactNumber
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.ProfilePhoto != nil {
		profile.ProfilePhoto = *req.ProfilePhoto
	}

	if err := s.users.UpdateRegularUserProfile(ctx, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteUser мягко удаляет учетную запись вместе с профилем.
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	err := s.users.SoftDeleteUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
