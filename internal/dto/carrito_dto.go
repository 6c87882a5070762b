package dto

import "github.com/shopspring/decimal"

type AgregarAlCarritoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type ItemCarritoResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Items    []ItemCarritoResponse `json:"items"`
	Subtotal decimal.Decimal       `json:"subtotal"`
}

// CheckoutRequest turns the cart into a sale. Prices are snapshotted from the
// catalog at checkout time, not from when items entered the cart.
type CheckoutRequest struct {
	Cliente         ClienteRequest `json:"cliente"          validate:"required"`
	MetodoPago      string         `json:"metodo_pago"      validate:"required,oneof=cash card"`
	TipoComprobante string         `json:"tipo_comprobante" validate:"required,oneof=boleta factura"`
	Notas           *string        `json:"notas"`
}
