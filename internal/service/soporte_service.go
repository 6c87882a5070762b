package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"floreria/internal/dto"
	"floreria/internal/model"
	"floreria/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SoporteService is the append-only customer support log. Customer messages
// enter as pending; a staff response appends its own ticket and flips every
// prior pending ticket of that customer to answered, in one transaction.
type SoporteService interface {
	PublicarMensaje(ctx context.Context, usuarioID uuid.UUID, mensaje string) (*dto.TicketResponse, error)
	Responder(ctx context.Context, usuarioID uuid.UUID, rolStaff, mensaje string) (*dto.TicketResponse, error)
	ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.TicketResponse, error)
	ListarAgrupados(ctx context.Context) ([]dto.HiloSoporteResponse, error)
}

type soporteService struct {
	repo        repository.SoporteRepository
	usuarioRepo repository.UsuarioRepository
}

func NewSoporteService(repo repository.SoporteRepository, usuarioRepo repository.UsuarioRepository) SoporteService {
	return &soporteService{repo: repo, usuarioRepo: usuarioRepo}
}

// etiquetaRol maps a staff role to the label shown as "Respondido por …".
func etiquetaRol(rol string) string {
	if rol == "admin" {
		return "Administrador"
	}
	return "Supervisor"
}

func (s *soporteService) PublicarMensaje(ctx context.Context, usuarioID uuid.UUID, mensaje string) (*dto.TicketResponse, error) {
	if mensaje == "" {
		return nil, errors.New("el mensaje no puede estar vacío")
	}
	cliente, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	t := &model.TicketSoporte{
		UsuarioID:     usuarioID,
		ClienteNombre: cliente.Nombre,
		ClienteEmail:  cliente.Email,
		Mensaje:       mensaje,
		EsCliente:     true,
		Estado:        model.TicketPendiente,
	}
	if err := s.repo.Create(ctx, nil, t); err != nil {
		return nil, err
	}
	return ticketToResponse(t), nil
}

func (s *soporteService) Responder(ctx context.Context, usuarioID uuid.UUID, rolStaff, mensaje string) (*dto.TicketResponse, error) {
	if mensaje == "" {
		return nil, errors.New("el mensaje no puede estar vacío")
	}
	cliente, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}

	etiqueta := etiquetaRol(rolStaff)
	t := &model.TicketSoporte{
		UsuarioID:     usuarioID,
		ClienteNombre: cliente.Nombre,
		ClienteEmail:  cliente.Email,
		Mensaje:       mensaje,
		EsCliente:     false,
		Estado:        model.TicketRespondido,
		RespondidoPor: &etiqueta,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.MarcarRespondidosTx(tx, usuarioID, etiqueta); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, t)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ticketToResponse(t), nil
}

func (s *soporteService) ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.TicketResponse, error) {
	tickets, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp = append(resp, *ticketToResponse(&tickets[i]))
	}
	return resp, nil
}

// ListarAgrupados builds the staff inbox: one thread per customer, ordered by
// most recent activity first.
func (s *soporteService) ListarAgrupados(ctx context.Context) ([]dto.HiloSoporteResponse, error) {
	tickets, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	hilos := make(map[uuid.UUID]*dto.HiloSoporteResponse)
	ultimo := make(map[uuid.UUID]time.Time)
	for i := range tickets {
		t := &tickets[i]
		h, ok := hilos[t.UsuarioID]
		if !ok {
			h = &dto.HiloSoporteResponse{
				UsuarioID:     t.UsuarioID.String(),
				ClienteNombre: t.ClienteNombre,
				ClienteEmail:  t.ClienteEmail,
			}
			hilos[t.UsuarioID] = h
		}
		if t.EsCliente {
			// The thread header shows the customer's own identity, not a
			// staff member's — keep the latest customer snapshot.
			h.ClienteNombre = t.ClienteNombre
			h.ClienteEmail = t.ClienteEmail
		}
		if t.Estado == model.TicketPendiente {
			h.Pendientes++
		}
		h.Tickets = append(h.Tickets, *ticketToResponse(t))
		if t.CreatedAt.After(ultimo[t.UsuarioID]) {
			ultimo[t.UsuarioID] = t.CreatedAt
		}
	}

	resp := make([]dto.HiloSoporteResponse, 0, len(hilos))
	for _, h := range hilos {
		resp = append(resp, *h)
	}
	sort.Slice(resp, func(i, j int) bool {
		ui, _ := uuid.Parse(resp[i].UsuarioID)
		uj, _ := uuid.Parse(resp[j].UsuarioID)
		return ultimo[ui].After(ultimo[uj])
	})
	return resp, nil
}

func ticketToResponse(t *model.TicketSoporte) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:            t.ID.String(),
		UsuarioID:     t.UsuarioID.String(),
		ClienteNombre: t.ClienteNombre,
		ClienteEmail:  t.ClienteEmail,
		Mensaje:       t.Mensaje,
		EsCliente:     t.EsCliente,
		Estado:        t.Estado,
		RespondidoPor: t.RespondidoPor,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}
