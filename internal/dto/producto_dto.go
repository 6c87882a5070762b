package dto

import "github.com/shopspring/decimal"

// ProductoFilter is bound from the query string of GET /v1/productos.
type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	Categoria   string `form:"categoria"`
	ProveedorID string `form:"proveedor_id"`
	Activo      string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearProductoRequest struct {
	SKU              string          `json:"sku"          validate:"required"`
	Nombre           string          `json:"nombre"       validate:"required,min=2"`
	Descripcion      *string         `json:"descripcion"`
	CategoriaID      string          `json:"categoria_id" validate:"required"`
	Precio           decimal.Decimal `json:"precio"       validate:"min=0"`
	Stock            int             `json:"stock"        validate:"min=0"`
	StockMinimo      int             `json:"stock_minimo" validate:"min=0"`
	ProveedorID      *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	FechaVencimiento *string         `json:"fecha_vencimiento"` // YYYY-MM-DD
	ImagenURL        *string         `json:"imagen_url"`
}

// ActualizarProductoRequest merges only the supplied fields into the product.
// Pointer fields distinguish "absent" from "set to zero value".
type ActualizarProductoRequest struct {
	SKU              *string          `json:"sku"`
	Nombre           *string          `json:"nombre"       validate:"omitempty,min=2"`
	Descripcion      *string          `json:"descripcion"`
	CategoriaID      *string          `json:"categoria_id"`
	Precio           *decimal.Decimal `json:"precio"`
	StockMinimo      *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	ProveedorID      *string          `json:"proveedor_id" validate:"omitempty,uuid"`
	FechaVencimiento *string          `json:"fecha_vencimiento"`
	ImagenURL        *string          `json:"imagen_url"`
}

// AjustarStockRequest is a dedicated stock delta operation — stock is never
// written through the generic partial update.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProductoResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	CategoriaID      string          `json:"categoria_id"`
	Precio           decimal.Decimal `json:"precio"`
	Stock            int             `json:"stock"`
	StockMinimo      int             `json:"stock_minimo"`
	ProveedorID      *string         `json:"proveedor_id,omitempty"`
	FechaVencimiento *string         `json:"fecha_vencimiento,omitempty"`
	ImagenURL        *string         `json:"imagen_url,omitempty"`
	Activo           bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// AlertaStockResponse flags a product at or below its minimum stock.
type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

type MovimientoStockResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
