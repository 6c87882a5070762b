package dto

import "github.com/shopspring/decimal"

type CompraFilter struct {
	Estado string `form:"estado,default=all"` // pending | approved | rejected | received | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemCompraRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type CrearCompraRequest struct {
	ProveedorID     string              `json:"proveedor_id"     validate:"required,uuid"`
	Items           []ItemCompraRequest `json:"items"            validate:"required,min=1,dive"`
	EntregaEstimada *string             `json:"entrega_estimada"` // YYYY-MM-DD
	Notas           *string             `json:"notas"`
}

type ItemCompraResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID              string               `json:"id"`
	Codigo          string               `json:"codigo"`
	ProveedorID     string               `json:"proveedor_id"`
	Proveedor       string               `json:"proveedor"`
	Items           []ItemCompraResponse `json:"items"`
	Total           decimal.Decimal      `json:"total"`
	EntregaEstimada *string              `json:"entrega_estimada,omitempty"`
	Estado          string               `json:"estado"`
	Notas           *string              `json:"notas,omitempty"`
	CreatedAt       string               `json:"created_at"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
