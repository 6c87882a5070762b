package dto

type PublicarMensajeRequest struct {
	Mensaje string `json:"mensaje" validate:"required,min=1"`
}

type ResponderTicketRequest struct {
	UsuarioID string `json:"usuario_id" validate:"required,uuid"`
	Mensaje   string `json:"mensaje"    validate:"required,min=1"`
}

type TicketResponse struct {
	ID            string  `json:"id"`
	UsuarioID     string  `json:"usuario_id"`
	ClienteNombre string  `json:"cliente_nombre"`
	ClienteEmail  string  `json:"cliente_email"`
	Mensaje       string  `json:"mensaje"`
	EsCliente     bool    `json:"es_cliente"`
	Estado        string  `json:"estado"`
	RespondidoPor *string `json:"respondido_por,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// HiloSoporteResponse is one customer's full thread, used by the staff view.
type HiloSoporteResponse struct {
	UsuarioID     string           `json:"usuario_id"`
	ClienteNombre string           `json:"cliente_nombre"`
	ClienteEmail  string           `json:"cliente_email"`
	Pendientes    int              `json:"pendientes"`
	Tickets       []TicketResponse `json:"tickets"`
}
