package repository

import (
	"context"

	"floreria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SoporteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.TicketSoporte) error
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.TicketSoporte, error)
	ListAll(ctx context.Context) ([]model.TicketSoporte, error)
	// MarcarRespondidosTx flips every pending ticket of the user to answered
	// and stamps the responder label. Returns the number of rows flipped.
	MarcarRespondidosTx(tx *gorm.DB, usuarioID uuid.UUID, respondidoPor string) (int64, error)
	DB() *gorm.DB
}

type soporteRepo struct{ db *gorm.DB }

func NewSoporteRepository(db *gorm.DB) SoporteRepository { return &soporteRepo{db: db} }

func (r *soporteRepo) DB() *gorm.DB { return r.db }

func (r *soporteRepo) Create(ctx context.Context, tx *gorm.DB, t *model.TicketSoporte) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(t).Error
}

func (r *soporteRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.TicketSoporte, error) {
	var tickets []model.TicketSoporte
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *soporteRepo) ListAll(ctx context.Context) ([]model.TicketSoporte, error) {
	var tickets []model.TicketSoporte
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&tickets).Error
	return tickets, err
}

func (r *soporteRepo) MarcarRespondidosTx(tx *gorm.DB, usuarioID uuid.UUID, respondidoPor string) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.TicketSoporte{}).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.TicketPendiente).
		Updates(map[string]interface{}{
			"estado":         model.TicketRespondido,
			"respondido_por": respondidoPor,
		})
	return res.RowsAffected, res.Error
}
