package model

import (
	"time"

	"github.com/google/uuid"
)

// Support ticket states. Tickets are append-only: a staff response never
// edits a customer message, it appends a new ticket and flips the customer's
// prior pending tickets to answered.
const (
	TicketPendiente  = "pending"
	TicketRespondido = "answered"
)

// TicketSoporte is one message in a customer support thread, keyed by the
// owning user. EsCliente distinguishes customer messages from staff replies.
type TicketSoporte struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ClienteNombre string    `gorm:"not null"`
	ClienteEmail  string    `gorm:"not null"`
	Mensaje       string    `gorm:"not null"`
	EsCliente     bool      `gorm:"not null"`
	Estado        string    `gorm:"type:varchar(10);not null;default:'pending'"`
	RespondidoPor *string
	CreatedAt     time.Time
}

func (TicketSoporte) TableName() string { return "tickets_soporte" }
