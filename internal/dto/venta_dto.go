package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha  string `form:"fecha"`              // YYYY-MM-DD; empty = todas
	Estado string `form:"estado,default=all"` // pending | processing | shipping | delivered | cancelled | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

// ClienteRequest is the customer snapshot embedded into the sale.
// RUC is required when tipo_comprobante is "factura" (checked in the service,
// validator tags cannot see across fields here).
type ClienteRequest struct {
	ID       *string `json:"id"       validate:"omitempty,uuid"`
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Email    string  `json:"email"    validate:"required,email"`
	Telefono *string `json:"telefono"`
	RUC      *string `json:"ruc"      validate:"omitempty,len=11"`
}

type RegistrarVentaRequest struct {
	Items           []ItemVentaRequest `json:"items"            validate:"required,min=1,dive"`
	Cliente         ClienteRequest     `json:"cliente"          validate:"required"`
	MetodoPago      string             `json:"metodo_pago"      validate:"required,oneof=cash card"`
	TipoComprobante string             `json:"tipo_comprobante" validate:"required,oneof=boleta factura"`
	Notas           *string            `json:"notas"`
}

type AvanzarEnvioRequest struct {
	Etapa string `json:"etapa" validate:"required,oneof=recibido preparacion despachado transito reparto entregado"`
}

type ActualizarNotasRequest struct {
	Notas string `json:"notas" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type ClienteResponse struct {
	ID       *string `json:"id,omitempty"`
	Nombre   string  `json:"nombre"`
	Email    string  `json:"email"`
	Telefono *string `json:"telefono,omitempty"`
	RUC      *string `json:"ruc,omitempty"`
}

// EnvioResponse exposes the shipment timeline; absent stages are null.
type EnvioResponse struct {
	Recibido    *string `json:"recibido"`
	Preparacion *string `json:"preparacion"`
	Despachado  *string `json:"despachado"`
	Transito    *string `json:"transito"`
	Reparto     *string `json:"reparto"`
	Entregado   *string `json:"entregado"`
	Anulado     *string `json:"anulado"`
}

type VentaResponse struct {
	ID              string              `json:"id"`
	Numero          int                 `json:"numero"`
	Items           []ItemVentaResponse `json:"items"`
	Cliente         ClienteResponse     `json:"cliente"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	IGV             decimal.Decimal     `json:"igv"`
	Total           decimal.Decimal     `json:"total"`
	Estado          string              `json:"estado"`
	MetodoPago      string              `json:"metodo_pago"`
	TipoComprobante string              `json:"tipo_comprobante"`
	Notas           *string             `json:"notas,omitempty"`
	Envio           *EnvioResponse      `json:"envio,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
