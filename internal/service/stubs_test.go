package service_test

// In-memory repository stubs shared by the service tests. Every stub keeps
// its data in plain maps and ignores the *gorm.DB transaction handle — the
// services tolerate a nil DB and call the repos directly.

import (
	"context"
	"errors"
	"time"

	"floreria/internal/dto"
	"floreria/internal/model"
	"floreria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── ProductoRepository ────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.agregar(p)
	return nil
}

// FindByID returns a detached copy, like a real row scan would.
func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			copia := *p
			return &copia, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("not found")
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("not found")
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("not found")
	}
	p.Stock += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── CategoriaRepository ───────────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[string]*model.Categoria
}

func newStubCategoriaRepo(ids ...string) *stubCategoriaRepo {
	r := &stubCategoriaRepo{categorias: make(map[string]*model.Categoria)}
	for _, id := range ids {
		r.categorias[id] = &model.Categoria{ID: id, Nombre: id, Activo: true}
	}
	return r
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id string) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	out := make([]model.Categoria, 0, len(r.categorias))
	for _, c := range r.categorias {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) SoftDelete(_ context.Context, id string) error {
	c, ok := r.categorias[id]
	if !ok {
		return errors.New("not found")
	}
	c.Activo = false
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── ProveedorRepository ───────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) agregar(p *model.Proveedor) *model.Proveedor {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return p
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	r.agregar(p)
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	out := make([]model.Proveedor, 0, len(r.proveedores))
	for _, p := range r.proveedores {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return errors.New("not found")
	}
	p.Activo = false
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    map[uuid.UUID]*model.Venta
	numeroSeq int

	porDia          []repository.FilaPorDia
	porCategoria    []repository.FilaPorCategoria
	top             []repository.FilaTopProducto
	ingresosTotales decimal.Decimal
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta), numeroSeq: 1000}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Envio != nil {
		v.Envio.VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out, _ := r.ListAll(context.Background())
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.ClienteID != nil && *v.ClienteID == clienteID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) ListAll(_ context.Context) ([]model.Venta, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("not found")
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) UpdateNotas(_ context.Context, id uuid.UUID, notas string) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("not found")
	}
	v.Notas = &notas
	return nil
}

func (r *stubVentaRepo) SaveEnvioTx(_ *gorm.DB, e *model.VentaEnvio) error {
	v, ok := r.ventas[e.VentaID]
	if !ok {
		return errors.New("not found")
	}
	v.Envio = e
	return nil
}

func (r *stubVentaRepo) NextNumero(_ context.Context, _ *gorm.DB) (int, error) {
	r.numeroSeq++
	return r.numeroSeq, nil
}

func (r *stubVentaRepo) TotalesPorDia(_ context.Context, _ time.Time) ([]repository.FilaPorDia, error) {
	return r.porDia, nil
}

func (r *stubVentaRepo) TotalesPorCategoria(_ context.Context) ([]repository.FilaPorCategoria, error) {
	return r.porCategoria, nil
}

func (r *stubVentaRepo) IngresosTotales(_ context.Context) (decimal.Decimal, error) {
	return r.ingresosTotales, nil
}

func (r *stubVentaRepo) TopProductos(_ context.Context, limit int) ([]repository.FilaTopProducto, error) {
	if limit < len(r.top) {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── CompraRepository ──────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras   map[uuid.UUID]*model.Compra
	numeroSeq int
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func (r *stubCompraRepo) Create(_ context.Context, _ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	out := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	c, ok := r.compras[id]
	if !ok {
		return errors.New("not found")
	}
	c.Estado = estado
	return nil
}

func (r *stubCompraRepo) NextNumero(_ context.Context, _ *gorm.DB) (int, error) {
	r.numeroSeq++
	return r.numeroSeq, nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── MovimientoStockRepository ─────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ int) ([]model.MovimientoStock, error) {
	return r.movimientos, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── UsuarioRepository ─────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) agregar(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.agregar(u)
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Activo {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("not found")
	}
	u.Activo = false
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── SoporteRepository ─────────────────────────────────────────────────────────

type stubSoporteRepo struct {
	tickets []*model.TicketSoporte
}

func (r *stubSoporteRepo) Create(_ context.Context, _ *gorm.DB, t *model.TicketSoporte) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.tickets = append(r.tickets, t)
	return nil
}

func (r *stubSoporteRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.TicketSoporte, error) {
	var out []model.TicketSoporte
	for _, t := range r.tickets {
		if t.UsuarioID == usuarioID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubSoporteRepo) ListAll(_ context.Context) ([]model.TicketSoporte, error) {
	out := make([]model.TicketSoporte, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubSoporteRepo) MarcarRespondidosTx(_ *gorm.DB, usuarioID uuid.UUID, respondidoPor string) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if t.UsuarioID == usuarioID && t.EsCliente && t.Estado == model.TicketPendiente {
			t.Estado = model.TicketRespondido
			rp := respondidoPor
			t.RespondidoPor = &rp
			n++
		}
	}
	return n, nil
}

func (r *stubSoporteRepo) DB() *gorm.DB { return nil }

var _ repository.SoporteRepository = (*stubSoporteRepo)(nil)

// ── CarritoRepository ─────────────────────────────────────────────────────────

type stubCarritoRepo struct {
	carritos map[uuid.UUID][]repository.ItemCarrito
}

func newStubCarritoRepo() *stubCarritoRepo {
	return &stubCarritoRepo{carritos: make(map[uuid.UUID][]repository.ItemCarrito)}
}

func (r *stubCarritoRepo) Load(_ context.Context, usuarioID uuid.UUID) ([]repository.ItemCarrito, error) {
	return r.carritos[usuarioID], nil
}

func (r *stubCarritoRepo) Save(_ context.Context, usuarioID uuid.UUID, items []repository.ItemCarrito) error {
	r.carritos[usuarioID] = items
	return nil
}

func (r *stubCarritoRepo) Clear(_ context.Context, usuarioID uuid.UUID) error {
	delete(r.carritos, usuarioID)
	return nil
}

var _ repository.CarritoRepository = (*stubCarritoRepo)(nil)
