package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"floreria/internal/dto"
	"floreria/internal/infra"
	"floreria/internal/model"
	"floreria/internal/repository"
	"floreria/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	AvanzarEnvio(ctx context.Context, id uuid.UUID, etapa string) (*dto.VentaResponse, error)
	ActualizarNotas(ctx context.Context, id uuid.UUID, notas string) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.VentaResponse, error)
	ExportarCSV(ctx context.Context, w io.Writer) error
	ComprobantePDF(ctx context.Context, id uuid.UUID) (string, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	productoRepo   repository.ProductoRepository
	movRepo        repository.MovimientoStockRepository
	dispatcher     *worker.Dispatcher
	pdfStoragePath string
	nombreTienda   string
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
	pdfStoragePath string,
	nombreTienda string,
) VentaService {
	return &ventaService{
		repo:           repo,
		productoRepo:   productoRepo,
		movRepo:        movRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		nombreTienda:   nombreTienda,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ────────────────────────────────────────────────────────────────
// Sale creation is the only place stock is decremented for the storefront.
// Order of operations:
//   1. Pre-flight (outside tx): resolve products, check activo + stock,
//      snapshot prices, compute subtotal/IGV/total. Nothing mutated on failure.
//   2. BEGIN TX: next numero, insert venta + items + envio(recibido=now),
//      decrement stock per line, insert movimientos de stock.
//   3. COMMIT — record and stock never disagree.
//   4. (async, best-effort) enqueue the comprobante email job.

func (s *ventaService) Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("la venta debe tener al menos un item")
	}
	if req.TipoComprobante == model.ComprobanteFactura && (req.Cliente.RUC == nil || *req.Cliente.RUC == "") {
		return nil, errors.New("una factura requiere el RUC del cliente")
	}

	type resolvedItem struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		subtotal   decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		if item.Cantidad < 1 {
			return nil, fmt.Errorf("la cantidad del producto %s debe ser al menos 1", item.ProductoID)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}
		// Negative stock is never allowed: reject instead of backorder.
		if p.Stock < item.Cantidad {
			return nil, fmt.Errorf("stock insuficiente para %s: disponible %d, solicitado %d",
				p.Nombre, p.Stock, item.Cantidad)
		}
		lineSubtotal := p.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2)
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, resolvedItem{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     p.Precio,
			cantidad:   item.Cantidad,
			subtotal:   lineSubtotal,
		})
	}

	igv := decimal.Zero
	if req.TipoComprobante == model.ComprobanteFactura {
		igv = subtotal.Mul(model.IGVRate).Round(2)
	}
	total := subtotal.Add(igv).Round(2)

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}

		var clienteID *uuid.UUID
		if req.Cliente.ID != nil {
			if cid, err := uuid.Parse(*req.Cliente.ID); err == nil {
				clienteID = &cid
			}
		}

		now := time.Now()
		venta = model.Venta{
			Numero:          numero,
			ClienteID:       clienteID,
			ClienteNombre:   req.Cliente.Nombre,
			ClienteEmail:    req.Cliente.Email,
			ClienteTelefono: req.Cliente.Telefono,
			ClienteRUC:      req.Cliente.RUC,
			Subtotal:        subtotal,
			IGV:             igv,
			Total:           total,
			Estado:          model.VentaPendiente,
			MetodoPago:      req.MetodoPago,
			TipoComprobante: req.TipoComprobante,
			Notas:           req.Notas,
			Envio:           &model.VentaEnvio{Recibido: &now},
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     r.productoID,
				Nombre:         r.nombre,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		for _, r := range resolved {
			prodBefore, err := s.productoRepo.FindByIDTx(tx, r.productoID)
			if err != nil {
				return fmt.Errorf("producto %s desapareció durante la venta", r.nombre)
			}
			if prodBefore.Stock < r.cantidad {
				// Re-check inside the tx — another sale may have raced us.
				return fmt.Errorf("stock insuficiente para %s", r.nombre)
			}
			if err := s.productoRepo.UpdateStockTx(tx, r.productoID, -r.cantidad); err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", r.nombre, err)
			}
			ventaRef := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    r.productoID,
				Tipo:          "venta",
				Cantidad:      -r.cantidad,
				StockAnterior: prodBefore.Stock,
				StockNuevo:    prodBefore.Stock - r.cantidad,
				Motivo:        fmt.Sprintf("Venta #%d", venta.Numero),
				ReferenciaID:  &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best-effort comprobante email — fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueComprobante(ctx, worker.ComprobanteJobPayload{
			VentaID:      venta.ID.String(),
			ClienteEmail: venta.ClienteEmail,
		})
	}

	return ventaToResponse(&venta), nil
}

// ── Anular ───────────────────────────────────────────────────────────────────
// The only compensating action in the system: restores stock for every line.
// Calling it twice fails on the second call without touching stock again.

func (s *ventaService) Anular(ctx context.Context, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if venta.Estado == model.VentaAnulada {
		return errors.New("la venta ya está anulada")
	}
	if venta.Estado == model.VentaEntregada {
		return errors.New("una venta entregada no puede anularse")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			prodBefore, err := s.productoRepo.FindByIDTx(tx, item.ProductoID)
			stockAntes := 0
			if err == nil && prodBefore != nil {
				stockAntes = prodBefore.Stock
			}

			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return err
			}

			ventaRef := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "anulacion",
				Cantidad:      item.Cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes + item.Cantidad,
				Motivo:        fmt.Sprintf("Anulación venta #%d", venta.Numero),
				ReferenciaID:  &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		now := time.Now()
		envio := venta.Envio
		if envio == nil {
			envio = &model.VentaEnvio{VentaID: venta.ID}
		}
		envio.Anulado = &now
		if err := s.repo.SaveEnvioTx(tx, envio); err != nil {
			return err
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoDesdeEnvio(envio))
	})
}

// ── AvanzarEnvio ─────────────────────────────────────────────────────────────
// Stamps the next shipment stage. The coarse estado column is recomputed from
// the envio record inside the same transaction, so the two can never disagree.

func (s *ventaService) AvanzarEnvio(ctx context.Context, id uuid.UUID, etapa string) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	if venta.Estado == model.VentaAnulada {
		return nil, errors.New("una venta anulada no puede avanzar de etapa")
	}

	envio := venta.Envio
	if envio == nil {
		envio = &model.VentaEnvio{VentaID: venta.ID}
	}

	slot := envio.Etapa(etapa)
	if slot == nil {
		return nil, fmt.Errorf("etapa de envío desconocida: %s", etapa)
	}
	if *slot != nil {
		return nil, fmt.Errorf("la etapa %s ya fue registrada", etapa)
	}
	// Every prior stage must already be stamped — no skipping ahead.
	for _, previa := range model.EtapasEnvio {
		if previa == etapa {
			break
		}
		if ts := envio.Etapa(previa); ts != nil && *ts == nil {
			return nil, fmt.Errorf("no se puede registrar %s antes de %s", etapa, previa)
		}
	}

	now := time.Now()
	*slot = &now

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.SaveEnvioTx(tx, envio); err != nil {
			return err
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoDesdeEnvio(envio))
	})
	if txErr != nil {
		return nil, txErr
	}

	venta.Envio = envio
	venta.Estado = model.EstadoDesdeEnvio(envio)
	return ventaToResponse(venta), nil
}

func (s *ventaService) ActualizarNotas(ctx context.Context, id uuid.UUID, notas string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("venta no encontrada")
	}
	return s.repo.UpdateNotas(ctx, id, notas)
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ventaService) ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		resp = append(resp, *ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

// ExportarCSV writes the sales ledger as CSV: one row per sale with the
// payment method label the admin UI shows (Tarjeta/Efectivo).
func (s *ventaService) ExportarCSV(ctx context.Context, w io.Writer) error {
	ventas, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Cliente", "Fecha", "Total", "Método de Pago", "Estado"}); err != nil {
		return err
	}
	for i := range ventas {
		v := &ventas[i]
		metodo := "Efectivo"
		if v.MetodoPago == model.PagoTarjeta {
			metodo = "Tarjeta"
		}
		row := []string{
			fmt.Sprintf("%d", v.Numero),
			v.ClienteNombre,
			v.CreatedAt.Format("02/01/2006"),
			v.Total.StringFixed(2),
			metodo,
			v.Estado,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ComprobantePDF renders (or re-renders) the receipt for a sale and returns
// the path to the file, ready to be served as a download.
func (s *ventaService) ComprobantePDF(ctx context.Context, id uuid.UUID) (string, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("venta no encontrada")
	}
	return infra.GenerarComprobantePDF(venta, s.pdfStoragePath, s.nombreTienda)
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func fmtTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}

	var clienteID *string
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		clienteID = &s
	}

	var envio *dto.EnvioResponse
	if v.Envio != nil {
		envio = &dto.EnvioResponse{
			Recibido:    fmtTime(v.Envio.Recibido),
			Preparacion: fmtTime(v.Envio.Preparacion),
			Despachado:  fmtTime(v.Envio.Despachado),
			Transito:    fmtTime(v.Envio.Transito),
			Reparto:     fmtTime(v.Envio.Reparto),
			Entregado:   fmtTime(v.Envio.Entregado),
			Anulado:     fmtTime(v.Envio.Anulado),
		}
	}

	return &dto.VentaResponse{
		ID:     v.ID.String(),
		Numero: v.Numero,
		Items:  items,
		Cliente: dto.ClienteResponse{
			ID:       clienteID,
			Nombre:   v.ClienteNombre,
			Email:    v.ClienteEmail,
			Telefono: v.ClienteTelefono,
			RUC:      v.ClienteRUC,
		},
		Subtotal:        v.Subtotal,
		IGV:             v.IGV,
		Total:           v.Total,
		Estado:          v.Estado,
		MetodoPago:      v.MetodoPago,
		TipoComprobante: v.TipoComprobante,
		Notas:           v.Notas,
		Envio:           envio,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
