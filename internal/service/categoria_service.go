package service

import (
	"context"
	"errors"

	"floreria/internal/dto"
	"floreria/internal/model"
	"floreria/internal/repository"

	"gorm.io/gorm"
)

// CategoriaService defines business operations for catalog categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id string) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:     c.ID,
		Nombre: c.Nombre,
	}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoriaResponse{}, err
	}
	if err == nil && existing != nil {
		return dto.CategoriaResponse{}, errors.New("ya existe una categoría con ese id")
	}

	c := &model.Categoria{
		ID:     req.ID,
		Nombre: req.Nombre,
		Activo: true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, len(categorias))
	for i, c := range categorias {
		resp[i] = mapCategoria(c)
	}
	return resp, nil
}

func (s *categoriaService) Desactivar(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("categoría no encontrada")
	}
	return s.repo.SoftDelete(ctx, id)
}
