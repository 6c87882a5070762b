package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floreria/internal/dto"
	"floreria/internal/model"
	"floreria/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, delta int, motivo string) (*dto.ProductoResponse, error)
	AlertasStock(ctx context.Context) ([]dto.AlertaStockResponse, error)
	Movimientos(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	catRepo repository.CategoriaRepository
	movRepo repository.MovimientoStockRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	catRepo repository.CategoriaRepository,
	movRepo repository.MovimientoStockRepository,
) ProductoService {
	return &productoService{repo: repo, catRepo: catRepo, movRepo: movRepo}
}

func parseFecha(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: %w", *s, err)
	}
	return &t, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, errors.New("el precio no puede ser negativo")
	}
	// SKU must be unique across the whole catalog, active or not.
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("ya existe un producto con SKU %s", req.SKU)
	}
	if _, err := s.catRepo.FindByID(ctx, req.CategoriaID); err != nil {
		return nil, fmt.Errorf("categoría %s no encontrada", req.CategoriaID)
	}

	vencimiento, err := parseFecha(req.FechaVencimiento)
	if err != nil {
		return nil, err
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		proveedorID = &pid
	}

	p := &model.Producto{
		SKU:              req.SKU,
		Nombre:           req.Nombre,
		Descripcion:      req.Descripcion,
		CategoriaID:      req.CategoriaID,
		Precio:           req.Precio,
		Stock:            req.Stock,
		StockMinimo:      req.StockMinimo,
		ProveedorID:      proveedorID,
		FechaVencimiento: vencimiento,
		ImagenURL:        req.ImagenURL,
		Activo:           true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

// Actualizar merges only the supplied fields. Stock is deliberately absent
// from the request type — it moves exclusively through AjustarStock and the
// sale/purchase ledgers.
func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	if req.SKU != nil && *req.SKU != p.SKU {
		if _, err := s.repo.FindBySKU(ctx, *req.SKU); err == nil {
			return nil, fmt.Errorf("ya existe un producto con SKU %s", *req.SKU)
		}
		p.SKU = *req.SKU
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		if _, err := s.catRepo.FindByID(ctx, *req.CategoriaID); err != nil {
			return nil, fmt.Errorf("categoría %s no encontrada", *req.CategoriaID)
		}
		p.CategoriaID = *req.CategoriaID
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, errors.New("el precio no puede ser negativo")
		}
		p.Precio = *req.Precio
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		p.ProveedorID = &pid
	}
	if req.FechaVencimiento != nil {
		vencimiento, err := parseFecha(req.FechaVencimiento)
		if err != nil {
			return nil, err
		}
		p.FechaVencimiento = vencimiento
	}
	if req.ImagenURL != nil {
		p.ImagenURL = req.ImagenURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// AjustarStock applies a manual delta (positive or negative) and records the
// movement. An adjustment that would leave negative stock is rejected.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, delta int, motivo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if p.Stock+delta < 0 {
		return nil, fmt.Errorf("el ajuste dejaría stock negativo (actual %d, delta %d)", p.Stock, delta)
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		mov := &model.MovimientoStock{
			ProductoID:    id,
			Tipo:          "ajuste_manual",
			Cantidad:      delta,
			StockAnterior: p.Stock,
			StockNuevo:    p.Stock + delta,
			Motivo:        motivo,
		}
		if err := s.movRepo.CreateTx(tx, mov); err != nil {
			return err
		}
		return s.repo.UpdateStockTx(tx, id, delta)
	})
	if err != nil {
		return nil, err
	}

	p.Stock += delta
	return productoToResponse(p), nil
}

func (s *productoService) AlertasStock(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		alertas = append(alertas, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Nombre:      p.Nombre,
			SKU:         p.SKU,
			Stock:       p.Stock,
			StockMinimo: p.StockMinimo,
		})
	}
	return alertas, nil
}

// Movimientos returns the stock audit trail for one product, newest first.
func (s *productoService) Movimientos(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	movs, err := s.movRepo.ListByProducto(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoStockResponse, len(movs))
	for i, m := range movs {
		var ref *string
		if m.ReferenciaID != nil {
			r := m.ReferenciaID.String()
			ref = &r
		}
		resp[i] = dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Producto:      p.Nombre,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			ReferenciaID:  ref,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	var proveedorID *string
	if p.ProveedorID != nil {
		s := p.ProveedorID.String()
		proveedorID = &s
	}
	var vencimiento *string
	if p.FechaVencimiento != nil {
		s := p.FechaVencimiento.Format("2006-01-02")
		vencimiento = &s
	}
	return &dto.ProductoResponse{
		ID:               p.ID.String(),
		SKU:              p.SKU,
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		CategoriaID:      p.CategoriaID,
		Precio:           p.Precio,
		Stock:            p.Stock,
		StockMinimo:      p.StockMinimo,
		ProveedorID:      proveedorID,
		FechaVencimiento: vencimiento,
		ImagenURL:        p.ImagenURL,
		Activo:           p.Activo,
	}
}
