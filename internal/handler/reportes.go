package handler

import (
	"net/http"
	"strconv"

	"floreria/internal/apierror"
	"floreria/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen returns the dashboard report: daily series, revenue by category,
// and the top products. ?dias= controls the window (default 7).
func (h *ReportesHandler) Resumen(c *gin.Context) {
	dias, err := strconv.Atoi(c.DefaultQuery("dias", "7"))
	if err != nil || dias < 1 || dias > 365 {
		c.JSON(http.StatusBadRequest, apierror.New("dias debe ser un entero entre 1 y 365"))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), dias)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
