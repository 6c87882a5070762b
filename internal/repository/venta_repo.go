package repository

import (
	"context"
	"time"

	"floreria/internal/dto"
	"floreria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FilaPorDia / FilaPorCategoria / FilaTopProducto are scan targets for the
// report aggregation queries.
type FilaPorDia struct {
	Fecha time.Time
	Total decimal.Decimal
}

type FilaPorCategoria struct {
	CategoriaID string
	Nombre      string
	Total       decimal.Decimal
}

type FilaTopProducto struct {
	ProductoID uuid.UUID
	Nombre     string
	Unidades   int
	Ingresos   decimal.Decimal
}

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Venta, error)
	ListAll(ctx context.Context) ([]model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	UpdateNotas(ctx context.Context, id uuid.UUID, notas string) error
	SaveEnvioTx(tx *gorm.DB, e *model.VentaEnvio) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)

	// Report aggregations — cancelled sales excluded.
	TotalesPorDia(ctx context.Context, desde time.Time) ([]FilaPorDia, error)
	TotalesPorCategoria(ctx context.Context) ([]FilaPorCategoria, error)
	TopProductos(ctx context.Context, limit int) ([]FilaTopProducto, error)
	IngresosTotales(ctx context.Context) (decimal.Decimal, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").Preload("Envio").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Envio").
		Order("numero DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Preload("Items").Preload("Envio").
		Order("numero DESC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListAll(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).Preload("Items").Order("numero DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) UpdateNotas(ctx context.Context, id uuid.UUID, notas string) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).Update("notas", notas).Error
}

func (r *ventaRepo) SaveEnvioTx(tx *gorm.DB, e *model.VentaEnvio) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(e).Error
}

func (r *ventaRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	// Sequence starts at 1001 — see infra.NewDatabase.
	if tx == nil {
		tx = r.db
	}
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('ventas_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *ventaRepo) TotalesPorDia(ctx context.Context, desde time.Time) ([]FilaPorDia, error) {
	var filas []FilaPorDia
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at) AS fecha, COALESCE(SUM(total), 0) AS total
		FROM ventas
		WHERE estado <> ? AND created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY fecha ASC`, model.VentaAnulada, desde).Scan(&filas).Error
	return filas, err
}

func (r *ventaRepo) TotalesPorCategoria(ctx context.Context) ([]FilaPorCategoria, error) {
	var filas []FilaPorCategoria
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.categoria_id, c.nombre, COALESCE(SUM(vi.subtotal), 0) AS total
		FROM venta_items vi
		JOIN ventas v ON v.id = vi.venta_id AND v.estado <> ?
		JOIN productos p ON p.id = vi.producto_id
		JOIN categorias c ON c.id = p.categoria_id
		GROUP BY p.categoria_id, c.nombre
		ORDER BY total DESC`, model.VentaAnulada).Scan(&filas).Error
	return filas, err
}

// IngresosTotales is the revenue of every product line, not just the top
// sellers — the denominator for the top-product shares.
func (r *ventaRepo) IngresosTotales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(vi.subtotal), 0)
		FROM venta_items vi
		JOIN ventas v ON v.id = vi.venta_id AND v.estado <> ?`,
		model.VentaAnulada).Scan(&total).Error
	return total, err
}

func (r *ventaRepo) TopProductos(ctx context.Context, limit int) ([]FilaTopProducto, error) {
	var filas []FilaTopProducto
	err := r.db.WithContext(ctx).Raw(`
		SELECT vi.producto_id, vi.nombre, SUM(vi.cantidad) AS unidades,
		       COALESCE(SUM(vi.subtotal), 0) AS ingresos
		FROM venta_items vi
		JOIN ventas v ON v.id = vi.venta_id AND v.estado <> ?
		GROUP BY vi.producto_id, vi.nombre
		ORDER BY ingresos DESC
		LIMIT ?`, model.VentaAnulada, limit).Scan(&filas).Error
	return filas, err
}
