package service_test

import (
	"context"
	"testing"

	"floreria/internal/dto"
	"floreria/internal/model"
	"floreria/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type compraFixture struct {
	svc       service.CompraService
	compras   *stubCompraRepo
	prods     *stubProductoRepo
	movs      *stubMovimientoRepo
	proveedor *model.Proveedor
	tulipanes *model.Producto
}

func newCompraFixture(t *testing.T) *compraFixture {
	t.Helper()
	compras := newStubCompraRepo()
	proveedores := newStubProveedorRepo()
	prods := newStubProductoRepo()
	movs := &stubMovimientoRepo{}

	proveedor := proveedores.agregar(&model.Proveedor{
		Nombre: "Vivero Los Andes",
		Activo: true,
	})
	tulipanes := prods.agregar(&model.Producto{
		SKU:         "FLOR-010",
		Nombre:      "Tulipanes",
		CategoriaID: "ramos",
		Precio:      decimal.NewFromFloat(25.00),
		Stock:       4,
		StockMinimo: 2,
		Activo:      true,
	})

	return &compraFixture{
		svc:       service.NewCompraService(compras, proveedores, prods, movs),
		compras:   compras,
		prods:     prods,
		movs:      movs,
		proveedor: proveedor,
		tulipanes: tulipanes,
	}
}

func (f *compraFixture) ordenDe(t *testing.T, cantidad int, precio float64) *dto.CompraResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearCompraRequest{
		ProveedorID: f.proveedor.ID.String(),
		Items: []dto.ItemCompraRequest{{
			ProductoID:     f.tulipanes.ID.String(),
			Cantidad:       cantidad,
			PrecioUnitario: decimal.NewFromFloat(precio),
		}},
	})
	require.NoError(t, err)
	return resp
}

func TestCrearCompra_CodigoCorrelativo(t *testing.T) {
	f := newCompraFixture(t)

	c1 := f.ordenDe(t, 10, 12.50)
	c2 := f.ordenDe(t, 5, 12.50)

	assert.Equal(t, "PO-001", c1.Codigo)
	assert.Equal(t, "PO-002", c2.Codigo)
	assert.Equal(t, model.CompraPendiente, c1.Estado)
}

func TestCrearCompra_CalculaTotal(t *testing.T) {
	f := newCompraFixture(t)

	resp := f.ordenDe(t, 12, 12.50)
	assert.Equal(t, "150.00", resp.Total.StringFixed(2))
	assert.Equal(t, "Vivero Los Andes", resp.Proveedor)
}

func TestCrearCompra_SinItems(t *testing.T) {
	f := newCompraFixture(t)

	_, err := f.svc.Crear(context.Background(), dto.CrearCompraRequest{
		ProveedorID: f.proveedor.ID.String(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "la orden de compra debe tener al menos un item")
}

func TestCrearCompra_ProveedorInexistente(t *testing.T) {
	f := newCompraFixture(t)

	_, err := f.svc.Crear(context.Background(), dto.CrearCompraRequest{
		ProveedorID: uuid.NewString(),
		Items: []dto.ItemCompraRequest{{
			ProductoID:     f.tulipanes.ID.String(),
			Cantidad:       1,
			PrecioUnitario: decimal.NewFromFloat(10),
		}},
	})
	require.Error(t, err)
	assert.EqualError(t, err, "proveedor no encontrado")
}

func TestAprobarCompra_SoloDesdePendiente(t *testing.T) {
	f := newCompraFixture(t)
	ctx := context.Background()

	resp := f.ordenDe(t, 10, 12.50)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Aprobar(ctx, id))
	assert.Equal(t, model.CompraAprobada, f.compras.compras[id].Estado)

	err := f.svc.Aprobar(ctx, id)
	require.Error(t, err)
	assert.EqualError(t, err, "solo una orden pendiente puede aprobarse (estado actual: approved)")
}

func TestRechazarCompra(t *testing.T) {
	f := newCompraFixture(t)
	ctx := context.Background()

	resp := f.ordenDe(t, 10, 12.50)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Rechazar(ctx, id))
	assert.Equal(t, model.CompraRechazada, f.compras.compras[id].Estado)

	// A rejected order is terminal.
	err := f.svc.Aprobar(ctx, id)
	require.Error(t, err)
	assert.EqualError(t, err, "solo una orden pendiente puede aprobarse (estado actual: rejected)")
}

func TestRecibirCompra_SumaStock(t *testing.T) {
	f := newCompraFixture(t)
	ctx := context.Background()

	resp := f.ordenDe(t, 20, 12.50)
	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Aprobar(ctx, id))

	require.NoError(t, f.svc.Recibir(ctx, id))

	assert.Equal(t, 24, f.tulipanes.Stock)
	assert.Equal(t, model.CompraRecibida, f.compras.compras[id].Estado)

	require.Len(t, f.movs.movimientos, 1)
	mov := f.movs.movimientos[0]
	assert.Equal(t, "compra_recibida", mov.Tipo)
	assert.Equal(t, 20, mov.Cantidad)
	assert.Equal(t, 4, mov.StockAnterior)
	assert.Equal(t, 24, mov.StockNuevo)
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, id, *mov.ReferenciaID)
}

func TestRecibirCompra_SoloDesdeAprobada(t *testing.T) {
	f := newCompraFixture(t)
	ctx := context.Background()

	resp := f.ordenDe(t, 20, 12.50)
	id := uuid.MustParse(resp.ID)

	err := f.svc.Recibir(ctx, id)
	require.Error(t, err)
	assert.EqualError(t, err, "solo una orden aprobada puede recibirse (estado actual: pending)")
	assert.Equal(t, 4, f.tulipanes.Stock)
}

func TestRecibirCompra_ProductoBorradoCancelaRecepcion(t *testing.T) {
	f := newCompraFixture(t)
	ctx := context.Background()

	resp := f.ordenDe(t, 20, 12.50)
	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Aprobar(ctx, id))

	delete(f.prods.productos, f.tulipanes.ID)

	err := f.svc.Recibir(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recepción cancelada")
	assert.Empty(t, f.movs.movimientos)
	assert.Equal(t, model.CompraAprobada, f.compras.compras[id].Estado)
}
