package service

import (
	"context"
	"errors"

	"floreria/internal/dto"
	"floreria/internal/model"
	"floreria/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:    req.Nombre,
		Contacto:  req.Contacto,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, len(proveedores))
	for i := range proveedores {
		resp[i] = proveedorToResponse(&proveedores[i])
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Contacto != nil {
		p.Contacto = req.Contacto
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("proveedor no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Contacto:  p.Contacto,
		Email:     p.Email,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
		Activo:    p.Activo,
	}
}
