package infra

// pdf.go — comprobante generation using go-pdf/fpdf.
// Renders a thermal receipt-style document for a registered sale:
//   - Shop name header and comprobante kind (boleta / factura)
//   - Sale number, date, customer block (RUC shown on facturas)
//   - Item table (name, quantity, line subtotal)
//   - Subtotal / IGV / bold total
//   - Payment method
//
// The output file is saved to storagePath/comprobante_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"floreria/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarComprobantePDF renders the receipt for a Venta and returns the path
// to the generated file. storagePath is created if needed.
func GenerarComprobantePDF(venta *model.Venta, storagePath, nombreTienda string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprobante_%d.pdf", venta.Numero)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 140mm — thermal receipt paper with room for the customer block
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 140},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	tipo := "Boleta de Venta"
	if venta.TipoComprobante == model.ComprobanteFactura {
		tipo = "Factura"
	}

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreTienda, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tipo, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta N° %d", venta.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Cliente: "+venta.ClienteNombre, "", 1, "L", false, 0, "")
	if venta.TipoComprobante == model.ComprobanteFactura && venta.ClienteRUC != nil {
		pdf.CellFormat(contentW, 4, "RUC: "+*venta.ClienteRUC, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Item rows ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := item.Nombre
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 5, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "S/ "+venta.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !venta.IGV.IsZero() {
		pdf.CellFormat(col1+col2, 5, "IGV (18%):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+venta.IGV.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "S/ "+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment method ───────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	metodo := "Efectivo"
	if venta.MetodoPago == model.PagoTarjeta {
		metodo = "Tarjeta"
	}
	pdf.CellFormat(contentW, 4, "Método de pago: "+metodo, "", 1, "L", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
