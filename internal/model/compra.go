package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order states. Transitions only move forward:
// pending → approved → received, or pending → rejected.
const (
	CompraPendiente = "pending"
	CompraAprobada  = "approved"
	CompraRechazada = "rejected"
	CompraRecibida  = "received"
)

// Compra is a purchase order sent to a supplier to replenish stock.
// Codigo is the business-facing identifier ("PO-001"), taken from a
// PostgreSQL sequence at creation time.
type Compra struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo          string    `gorm:"uniqueIndex;not null"`
	ProveedorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EntregaEstimada *time.Time
	Estado          string `gorm:"type:varchar(20);not null;default:'pending'"`
	Notas           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Proveedor *Proveedor   `gorm:"foreignKey:ProveedorID"`
	Items     []CompraItem `gorm:"foreignKey:CompraID"`
}

func (Compra) TableName() string { return "compras" }

// CompraItem is one line of a purchase order. PrecioUnitario is the agreed
// cost price, snapshotted at creation — it does not track catalog changes.
type CompraItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (CompraItem) TableName() string { return "compra_items" }
