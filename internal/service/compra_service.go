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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraService manages purchase orders and their effect on stock.
// State machine: pending → {approved → received, rejected}. Nothing reopens
// a rejected or received order, and only receiving touches inventory.
type CompraService interface {
	Crear(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error)
	Aprobar(ctx context.Context, id uuid.UUID) error
	Rechazar(ctx context.Context, id uuid.UUID) error
	Recibir(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	proveedorRepo repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
	movRepo       repository.MovimientoStockRepository
}

func NewCompraService(
	repo repository.CompraRepository,
	proveedorRepo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
) CompraService {
	return &compraService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		productoRepo:  productoRepo,
		movRepo:       movRepo,
	}
}

func (s *compraService) Crear(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("la orden de compra debe tener al menos un item")
	}

	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}
	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}

	var entrega *time.Time
	if req.EntregaEstimada != nil && *req.EntregaEstimada != "" {
		t, err := time.Parse("2006-01-02", *req.EntregaEstimada)
		if err != nil {
			return nil, fmt.Errorf("entrega_estimada inválida: %w", err)
		}
		entrega = &t
	}

	// Resolve products and compute subtotals before creating anything.
	type resolvedItem struct {
		productoID uuid.UUID
		nombre     string
		cantidad   int
		precio     decimal.Decimal
		subtotal   decimal.Decimal
	}
	var resolved []resolvedItem
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		subtotal := item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2)
		total = total.Add(subtotal)
		resolved = append(resolved, resolvedItem{
			productoID: pid,
			nombre:     p.Nombre,
			cantidad:   item.Cantidad,
			precio:     item.PrecioUnitario,
			subtotal:   subtotal,
		})
	}

	var compra model.Compra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}
		compra = model.Compra{
			Codigo:          fmt.Sprintf("PO-%03d", numero),
			ProveedorID:     proveedorID,
			Total:           total,
			EntregaEstimada: entrega,
			Estado:          model.CompraPendiente,
			Notas:           req.Notas,
		}
		for _, r := range resolved {
			compra.Items = append(compra.Items, model.CompraItem{
				ProductoID:     r.productoID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}
		return s.repo.Create(ctx, tx, &compra)
	})
	if txErr != nil {
		return nil, txErr
	}

	compra.Proveedor = proveedor
	return compraToResponse(&compra), nil
}

func (s *compraService) Aprobar(ctx context.Context, id uuid.UUID) error {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("orden de compra no encontrada")
	}
	if compra.Estado != model.CompraPendiente {
		return fmt.Errorf("solo una orden pendiente puede aprobarse (estado actual: %s)", compra.Estado)
	}
	return s.repo.UpdateEstadoTx(nil, id, model.CompraAprobada)
}

func (s *compraService) Rechazar(ctx context.Context, id uuid.UUID) error {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("orden de compra no encontrada")
	}
	if compra.Estado != model.CompraPendiente {
		return fmt.Errorf("solo una orden pendiente puede rechazarse (estado actual: %s)", compra.Estado)
	}
	return s.repo.UpdateEstadoTx(nil, id, model.CompraRechazada)
}

// Recibir marks an approved order as received and adds each line's quantity
// to the referenced product's stock. All lines are verified before anything
// is applied; a missing product aborts the whole receipt.
func (s *compraService) Recibir(ctx context.Context, id uuid.UUID) error {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("orden de compra no encontrada")
	}
	if compra.Estado != model.CompraAprobada {
		return fmt.Errorf("solo una orden aprobada puede recibirse (estado actual: %s)", compra.Estado)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Fail-fast pass: every product must exist before any stock moves.
		antes := make(map[uuid.UUID]int, len(compra.Items))
		for _, item := range compra.Items {
			p, err := s.productoRepo.FindByIDTx(tx, item.ProductoID)
			if err != nil {
				return fmt.Errorf("producto %s de la orden no existe, recepción cancelada", item.ProductoID)
			}
			antes[item.ProductoID] = p.Stock
		}

		for _, item := range compra.Items {
			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return err
			}
			compraRef := compra.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "compra_recibida",
				Cantidad:      item.Cantidad,
				StockAnterior: antes[item.ProductoID],
				StockNuevo:    antes[item.ProductoID] + item.Cantidad,
				Motivo:        fmt.Sprintf("Recepción %s", compra.Codigo),
				ReferenciaID:  &compraRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.CompraRecibida)
	})
}

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orden de compra no encontrada")
	}
	return compraToResponse(compra), nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	compras, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, *compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	items := make([]dto.ItemCompraResponse, 0, len(c.Items))
	for _, item := range c.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemCompraResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	proveedorNombre := ""
	if c.Proveedor != nil {
		proveedorNombre = c.Proveedor.Nombre
	}
	var entrega *string
	if c.EntregaEstimada != nil {
		s := c.EntregaEstimada.Format("2006-01-02")
		entrega = &s
	}
	return &dto.CompraResponse{
		ID:              c.ID.String(),
		Codigo:          c.Codigo,
		ProveedorID:     c.ProveedorID.String(),
		Proveedor:       proveedorNombre,
		Items:           items,
		Total:           c.Total,
		EntregaEstimada: entrega,
		Estado:          c.Estado,
		Notas:           c.Notas,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}
