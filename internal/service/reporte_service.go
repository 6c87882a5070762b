package service

import (
	"context"
	"time"

	"floreria/internal/dto"
	"floreria/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService computes the admin dashboard aggregates: daily sales for the
// last N days, revenue by category, and the top products by revenue.
// Cancelled sales are excluded from every series.
type ReporteService interface {
	Resumen(ctx context.Context, dias int) (*dto.ResumenReporteResponse, error)
}

const topProductosLimit = 5

type reporteService struct {
	ventaRepo repository.VentaRepository
}

func NewReporteService(ventaRepo repository.VentaRepository) ReporteService {
	return &reporteService{ventaRepo: ventaRepo}
}

func (s *reporteService) Resumen(ctx context.Context, dias int) (*dto.ResumenReporteResponse, error) {
	if dias < 1 {
		dias = 7
	}
	desde := time.Now().AddDate(0, 0, -(dias - 1)).Truncate(24 * time.Hour)

	filas, err := s.ventaRepo.TotalesPorDia(ctx, desde)
	if err != nil {
		return nil, err
	}
	// Emit one point per day, zero-filled, so the chart axis is contiguous.
	porFecha := make(map[string]decimal.Decimal, len(filas))
	for _, f := range filas {
		porFecha[f.Fecha.Format("2006-01-02")] = f.Total
	}
	porDia := make([]dto.VentaPorDia, 0, dias)
	for i := 0; i < dias; i++ {
		fecha := desde.AddDate(0, 0, i).Format("2006-01-02")
		total, ok := porFecha[fecha]
		if !ok {
			total = decimal.Zero
		}
		porDia = append(porDia, dto.VentaPorDia{Fecha: fecha, Total: total})
	}

	porCat, err := s.ventaRepo.TotalesPorCategoria(ctx)
	if err != nil {
		return nil, err
	}
	categorias := make([]dto.VentaPorCategoria, 0, len(porCat))
	for _, f := range porCat {
		categorias = append(categorias, dto.VentaPorCategoria{
			CategoriaID: f.CategoriaID,
			Categoria:   f.Nombre,
			Total:       f.Total,
		})
	}

	top, err := s.ventaRepo.TopProductos(ctx, topProductosLimit)
	if err != nil {
		return nil, err
	}
	// Shares are over the revenue of ALL products, so a long tail outside
	// the top five still shows up in the percentages.
	ingresosTotales, err := s.ventaRepo.IngresosTotales(ctx)
	if err != nil {
		return nil, err
	}
	topResp := make([]dto.TopProducto, 0, len(top))
	for _, f := range top {
		porcentaje := "0.0"
		if ingresosTotales.IsPositive() {
			porcentaje = f.Ingresos.Div(ingresosTotales).Mul(decimal.NewFromInt(100)).StringFixed(1)
		}
		topResp = append(topResp, dto.TopProducto{
			ProductoID: f.ProductoID.String(),
			Producto:   f.Nombre,
			Unidades:   f.Unidades,
			Ingresos:   f.Ingresos,
			Porcentaje: porcentaje,
		})
	}

	return &dto.ResumenReporteResponse{
		VentasPorDia:       porDia,
		VentasPorCategoria: categorias,
		TopProductos:       topResp,
	}, nil
}
