package dto

import "github.com/shopspring/decimal"

// VentaPorDia is one point of the daily sales series.
type VentaPorDia struct {
	Fecha string          `json:"fecha"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

type VentaPorCategoria struct {
	CategoriaID string          `json:"categoria_id"`
	Categoria   string          `json:"categoria"`
	Total       decimal.Decimal `json:"total"`
}

// TopProducto ranks a product by revenue; Porcentaje is its share of total
// revenue, one decimal place.
type TopProducto struct {
	ProductoID string          `json:"producto_id"`
	Producto   string          `json:"producto"`
	Unidades   int             `json:"unidades"`
	Ingresos   decimal.Decimal `json:"ingresos"`
	Porcentaje string          `json:"porcentaje"`
}

// ResumenReporteResponse mirrors the admin dashboard's report export.
type ResumenReporteResponse struct {
	VentasPorDia       []VentaPorDia       `json:"ventas_por_dia"`
	VentasPorCategoria []VentaPorCategoria `json:"ventas_por_categoria"`
	TopProductos       []TopProducto       `json:"top_productos"`
}
