package repository

import (
	"context"

	"floreria/internal/dto"
	"floreria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).Preload("Items.Producto").Preload("Proveedor").First(&c, id).Error
	return &c, err
}

func (r *compraRepo) List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Producto").Preload("Proveedor").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Compra{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *compraRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	// PostgreSQL sequence keeps PO codes gapless enough and race-free.
	if tx == nil {
		tx = r.db
	}
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('compras_numero_seq')").Scan(&num).Error
	return num, err
}
