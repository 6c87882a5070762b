package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores accounts with role-based access.
// Rol: "admin" | "supervisor" | "cliente"
// Staff (admin/supervisor) run the back office; clientes are storefront
// customers created through public registration.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Telefono     *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
