package service

import (
	"context"
	"errors"
	"fmt"

	"floreria/internal/dto"
	"floreria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarritoService is the storefront shopping cart. The cart stores only
// product references and quantities; prices are resolved from the catalog on
// every read, and snapshotted into the sale only at checkout.
type CarritoService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error)
	Agregar(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarAlCarritoRequest) (*dto.CarritoResponse, error)
	Quitar(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID) (*dto.CarritoResponse, error)
	Vaciar(ctx context.Context, usuarioID uuid.UUID) error
	Checkout(ctx context.Context, usuarioID uuid.UUID, req dto.CheckoutRequest) (*dto.VentaResponse, error)
}

type carritoService struct {
	repo         repository.CarritoRepository
	productoRepo repository.ProductoRepository
	ventas       VentaService
}

func NewCarritoService(
	repo repository.CarritoRepository,
	productoRepo repository.ProductoRepository,
	ventas VentaService,
) CarritoService {
	return &carritoService{repo: repo, productoRepo: productoRepo, ventas: ventas}
}

func (s *carritoService) Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error) {
	items, err := s.repo.Load(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, items)
}

func (s *carritoService) Agregar(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarAlCarritoRequest) (*dto.CarritoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if !p.Activo {
		return nil, fmt.Errorf("producto %s no está disponible", p.Nombre)
	}

	items, err := s.repo.Load(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductoID == pid {
			items[i].Cantidad += req.Cantidad
			found = true
			break
		}
	}
	if !found {
		items = append(items, repository.ItemCarrito{ProductoID: pid, Cantidad: req.Cantidad})
	}

	if err := s.repo.Save(ctx, usuarioID, items); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, items)
}

func (s *carritoService) Quitar(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID) (*dto.CarritoResponse, error) {
	items, err := s.repo.Load(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ProductoID != productoID {
			kept = append(kept, it)
		}
	}
	if err := s.repo.Save(ctx, usuarioID, kept); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, kept)
}

func (s *carritoService) Vaciar(ctx context.Context, usuarioID uuid.UUID) error {
	return s.repo.Clear(ctx, usuarioID)
}

// Checkout turns the cart into a sale. The cart is cleared only after the
// sale is recorded; a failed sale leaves the cart intact.
func (s *carritoService) Checkout(ctx context.Context, usuarioID uuid.UUID, req dto.CheckoutRequest) (*dto.VentaResponse, error) {
	items, err := s.repo.Load(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("el carrito está vacío")
	}

	ventaReq := dto.RegistrarVentaRequest{
		Cliente:         req.Cliente,
		MetodoPago:      req.MetodoPago,
		TipoComprobante: req.TipoComprobante,
		Notas:           req.Notas,
	}
	uid := usuarioID.String()
	ventaReq.Cliente.ID = &uid
	for _, it := range items {
		ventaReq.Items = append(ventaReq.Items, dto.ItemVentaRequest{
			ProductoID: it.ProductoID.String(),
			Cantidad:   it.Cantidad,
		})
	}

	venta, err := s.ventas.Registrar(ctx, ventaReq)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Clear(ctx, usuarioID); err != nil {
		// Sale already recorded; a stale cart is an annoyance, not a loss.
		return venta, nil
	}
	return venta, nil
}

func (s *carritoService) toResponse(ctx context.Context, items []repository.ItemCarrito) (*dto.CarritoResponse, error) {
	resp := &dto.CarritoResponse{Items: []dto.ItemCarritoResponse{}, Subtotal: decimal.Zero}
	for _, it := range items {
		p, err := s.productoRepo.FindByID(ctx, it.ProductoID)
		if err != nil {
			// Product removed from the catalog since it entered the cart —
			// show the line with a fallback label and no price.
			resp.Items = append(resp.Items, dto.ItemCarritoResponse{
				ProductoID: it.ProductoID.String(),
				Nombre:     "(producto no disponible)",
				Precio:     decimal.Zero,
				Cantidad:   it.Cantidad,
				Subtotal:   decimal.Zero,
			})
			continue
		}
		subtotal := p.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))).Round(2)
		resp.Items = append(resp.Items, dto.ItemCarritoResponse{
			ProductoID: it.ProductoID.String(),
			Nombre:     p.Nombre,
			Precio:     p.Precio,
			Cantidad:   it.Cantidad,
			Subtotal:   subtotal,
		})
		resp.Subtotal = resp.Subtotal.Add(subtotal)
	}
	return resp, nil
}
