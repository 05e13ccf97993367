// Package models содержит доменные структуры платформы обзоров,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User представляет учетную запись: учетные данные и роль.
// Профильные данные лежат в RegularUser или Admin в зависимости от роли.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsDeleted    bool       `json:"isDeleted"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// RegularUser профиль обычного пользователя.
// FullName — производное поле, собирается сервисом перед записью.
type RegularUser struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	FirstName     string    `json:"firstName"`
	MiddleName    string    `json:"middleName,omitempty"`
	LastName      string    `json:"lastName"`
	FullName      string    `json:"fullName"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Address       string    `json:"address,omitempty"`
	ProfilePhoto  string    `json:"profilePhoto,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Admin профиль администратора.
type Admin struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	MiddleName   string    `json:"middleName,omitempty"`
	LastName     string    `json:"lastName"`
	FullName     string    `json:"fullName"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FirstName     string `json:"first_name" validate:"required"`
	MiddleName    string `json:"middle_name,omitempty" validate:"omitempty"`
	LastName      string `json:"last_name" validate:"required"`
	ContactNumber string `json:"contact_number,omitempty" validate:"omitempty"`
	Address       string `json:"address,omitempty" validate:"omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyProfileUpdate используется для частичного обновления профиля.
// nil-поле означает «не менять»; FullName пересобирается сервисом.
type DummyProfileUpdate struct {
	FirstName     *string `json:"first_name,omitempty" validate:"omitempty"`
	MiddleName    *string `json:"middle_name,omitempty" validate:"omitempty"`
	LastName      *string `json:"last_name,omitempty" validate:"omitempty"`
	ContactNumber *string `json:"contact_number,omitempty" validate:"omitempty"`
	Address       *string `json:"address,omitempty" validate:"omitempty"`
	ProfilePhoto  *string `json:"profile_photo,omitempty" validate:"omitempty"`
}
