package worker

// comprobante_worker.go
// Processes receipt jobs from QueueComprobante: renders the boleta/factura
// PDF for a registered sale and enqueues the email job that delivers it.

import (
	"context"
	"encoding/json"
	"fmt"

	"floreria/internal/infra"
	"floreria/internal/model"
	"floreria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	VentaID      string `json:"venta_id"`
	ClienteEmail string `json:"cliente_email,omitempty"`
}

type ComprobanteWorker struct {
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	nombreTienda   string
}

func NewComprobanteWorker(
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	nombreTienda string,
) *ComprobanteWorker {
	return &ComprobanteWorker{
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		nombreTienda:   nombreTienda,
	}
}

// Process handles a single comprobante job:
//  1. Parse ComprobanteJobPayload from the job envelope
//  2. Fetch the Venta (with items and envío) from DB
//  3. Render the PDF receipt
//  4. Enqueue the email job if the customer left an address
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("comprobante_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: venta not found")
		return
	}

	pdfPath, err := infra.GenerarComprobantePDF(venta, w.pdfStoragePath, w.nombreTienda)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: pdf generation failed")
		return
	}
	log.Info().Str("venta_id", payload.VentaID).Str("pdf", pdfPath).Msg("comprobante_worker: pdf generated")

	if payload.ClienteEmail == "" {
		return
	}

	tipo := "Boleta"
	if venta.TipoComprobante == model.ComprobanteFactura {
		tipo = "Factura"
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.ClienteEmail,
		Subject: fmt.Sprintf("%s — %s de venta N° %d", w.nombreTienda, tipo, venta.Numero),
		Body: fmt.Sprintf(
			"Hola %s,\n\nGracias por tu compra en %s. Adjuntamos tu %s por S/ %s.\n\nSaludos",
			venta.ClienteNombre, w.nombreTienda, tipo, venta.Total.StringFixed(2),
		),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: failed to enqueue email job")
	}
}
