package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coarse sale states. The stored Estado column is always derived from the
// VentaEnvio timestamps (see EstadoDesdeEnvio) — it exists as a column only
// so listings can filter without joining.
const (
	VentaPendiente  = "pending"
	VentaPreparando = "processing"
	VentaEnCamino   = "shipping"
	VentaEntregada  = "delivered"
	VentaAnulada    = "cancelled"
)

// Payment methods and receipt types accepted by the storefront.
// "factura" requires the customer's RUC and triggers IGV.
const (
	PagoEfectivo = "cash"
	PagoTarjeta  = "card"

	ComprobanteBoleta  = "boleta"
	ComprobanteFactura = "factura"
)

// IGVRate is the Peruvian VAT applied to factura sales. Fixed by law,
// deliberately not configurable.
var IGVRate = decimal.NewFromFloat(0.18)

// Venta is a customer sale. Numero is the business-facing correlative,
// starting at 1001. Customer data is snapshotted into the record so the sale
// stays readable even if the account changes or is removed later.
type Venta struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero int       `gorm:"uniqueIndex;not null"`

	ClienteID       *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNombre   string     `gorm:"not null"`
	ClienteEmail    string     `gorm:"not null"`
	ClienteTelefono *string
	ClienteRUC      *string `gorm:"column:cliente_ruc"`

	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IGV      decimal.Decimal `gorm:"column:igv;type:decimal(12,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Estado           string `gorm:"type:varchar(20);not null;default:'pending';index"`
	MetodoPago       string `gorm:"type:varchar(10);not null"`
	TipoComprobante  string `gorm:"type:varchar(10);not null"`
	Notas            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
	Envio *VentaEnvio `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one sale line. Nombre and PrecioUnitario are snapshots taken
// at sale time; later catalog edits do not affect recorded sales.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

// Shipment stages, in order. Each stage is a nullable timestamp on
// VentaEnvio; a stage may only be stamped when every prior stage is.
const (
	EtapaRecibido    = "recibido"
	EtapaPreparacion = "preparacion"
	EtapaDespachado  = "despachado"
	EtapaTransito    = "transito"
	EtapaReparto     = "reparto"
	EtapaEntregado   = "entregado"
)

// EtapasEnvio lists the shipment stages in progression order.
var EtapasEnvio = []string{
	EtapaRecibido, EtapaPreparacion, EtapaDespachado,
	EtapaTransito, EtapaReparto, EtapaEntregado,
}

// VentaEnvio tracks the shipment timeline of a sale, one nullable timestamp
// per stage. It is the single source of truth for the sale's coarse estado.
type VentaEnvio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Recibido    *time.Time
	Preparacion *time.Time
	Despachado  *time.Time
	Transito    *time.Time
	Reparto     *time.Time
	Entregado   *time.Time
	Anulado     *time.Time
	UpdatedAt   time.Time
}

func (VentaEnvio) TableName() string { return "venta_envios" }

// Etapa returns a pointer to the timestamp field for the named stage,
// or nil if the stage name is unknown.
func (e *VentaEnvio) Etapa(nombre string) **time.Time {
	switch nombre {
	case EtapaRecibido:
		return &e.Recibido
	case EtapaPreparacion:
		return &e.Preparacion
	case EtapaDespachado:
		return &e.Despachado
	case EtapaTransito:
		return &e.Transito
	case EtapaReparto:
		return &e.Reparto
	case EtapaEntregado:
		return &e.Entregado
	}
	return nil
}

// EstadoDesdeEnvio derives the coarse sale estado from the shipment record.
// An anulado stamp wins over everything else.
func EstadoDesdeEnvio(e *VentaEnvio) string {
	if e == nil {
		return VentaPendiente
	}
	if e.Anulado != nil {
		return VentaAnulada
	}
	switch {
	case e.Entregado != nil:
		return VentaEntregada
	case e.Despachado != nil: // despachado, transito and reparto all read as "shipping"
		return VentaEnCamino
	case e.Preparacion != nil:
		return VentaPreparando
	default:
		return VentaPendiente
	}
}
