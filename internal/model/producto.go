package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item sold by the storefront (ramos, centros, plantas…).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	CategoriaID string          `gorm:"not null;index"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:5"`
	ProveedorID *uuid.UUID      `gorm:"type:uuid;index"`
	// FechaVencimiento applies to fresh-flower products; nil for durables.
	FechaVencimiento *time.Time
	ImagenURL        *string
	Activo           bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Producto) TableName() string { return "productos" }
