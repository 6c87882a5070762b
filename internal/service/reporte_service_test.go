package service_test

import (
	"context"
	"testing"
	"time"

	"floreria/internal/repository"
	"floreria/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumen_RellenaDiasSinVentas(t *testing.T) {
	ventas := newStubVentaRepo()
	hoy := time.Now().Truncate(24 * time.Hour)
	ventas.porDia = []repository.FilaPorDia{
		{Fecha: hoy, Total: decimal.NewFromFloat(250.00)},
	}

	resumen, err := service.NewReporteService(ventas).Resumen(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resumen.VentasPorDia, 7)
	// The series ends today; earlier days without sales read as zero.
	ultimo := resumen.VentasPorDia[6]
	assert.Equal(t, hoy.Format("2006-01-02"), ultimo.Fecha)
	assert.Equal(t, "250.00", ultimo.Total.StringFixed(2))
	for _, punto := range resumen.VentasPorDia[:6] {
		assert.True(t, punto.Total.IsZero(), "día %s debería estar en cero", punto.Fecha)
	}
}

func TestResumen_TopProductosConPorcentaje(t *testing.T) {
	ventas := newStubVentaRepo()
	ventas.top = []repository.FilaTopProducto{
		{ProductoID: uuid.New(), Nombre: "Ramo de rosas", Unidades: 30, Ingresos: decimal.NewFromFloat(750.00)},
		{ProductoID: uuid.New(), Nombre: "Girasoles", Unidades: 10, Ingresos: decimal.NewFromFloat(250.00)},
	}
	ventas.ingresosTotales = decimal.NewFromFloat(1000.00)
	ventas.porCategoria = []repository.FilaPorCategoria{
		{CategoriaID: "ramos", Nombre: "Ramos", Total: decimal.NewFromFloat(1000.00)},
	}

	resumen, err := service.NewReporteService(ventas).Resumen(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resumen.TopProductos, 2)
	assert.Equal(t, "75.0", resumen.TopProductos[0].Porcentaje)
	assert.Equal(t, "25.0", resumen.TopProductos[1].Porcentaje)

	require.Len(t, resumen.VentasPorCategoria, 1)
	assert.Equal(t, "Ramos", resumen.VentasPorCategoria[0].Categoria)
	assert.Equal(t, "1000.00", resumen.VentasPorCategoria[0].Total.StringFixed(2))
}

func TestResumen_PorcentajeSobreIngresosDeTodoElCatalogo(t *testing.T) {
	ventas := newStubVentaRepo()
	// Five products make the cut; a sixth (revenue 100) is outside the top
	// list but still counts toward the denominator.
	ventas.top = []repository.FilaTopProducto{
		{ProductoID: uuid.New(), Nombre: "Ramo de rosas", Unidades: 20, Ingresos: decimal.NewFromFloat(500.00)},
		{ProductoID: uuid.New(), Nombre: "Girasoles", Unidades: 4, Ingresos: decimal.NewFromFloat(100.00)},
		{ProductoID: uuid.New(), Nombre: "Tulipanes", Unidades: 4, Ingresos: decimal.NewFromFloat(100.00)},
		{ProductoID: uuid.New(), Nombre: "Lirios", Unidades: 4, Ingresos: decimal.NewFromFloat(100.00)},
		{ProductoID: uuid.New(), Nombre: "Orquídeas", Unidades: 4, Ingresos: decimal.NewFromFloat(100.00)},
	}
	ventas.ingresosTotales = decimal.NewFromFloat(1000.00)

	resumen, err := service.NewReporteService(ventas).Resumen(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resumen.TopProductos, 5)
	assert.Equal(t, "50.0", resumen.TopProductos[0].Porcentaje)
	assert.Equal(t, "10.0", resumen.TopProductos[1].Porcentaje)
}

func TestResumen_DiasInvalidosUsaSieteDias(t *testing.T) {
	ventas := newStubVentaRepo()

	resumen, err := service.NewReporteService(ventas).Resumen(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, resumen.VentasPorDia, 7)
}
