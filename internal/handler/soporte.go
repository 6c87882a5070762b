package handler

import (
	"net/http"

	"floreria/internal/apierror"
	"floreria/internal/dto"
	"floreria/internal/middleware"
	"floreria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SoporteHandler struct{ svc service.SoporteService }

func NewSoporteHandler(svc service.SoporteService) *SoporteHandler {
	return &SoporteHandler{svc: svc}
}

// Publicar appends a customer message to their support thread.
func (h *SoporteHandler) Publicar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}
	var req dto.PublicarMensajeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PublicarMensaje(c.Request.Context(), uid, req.Mensaje)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MisTickets lists the authenticated customer's own thread, oldest first.
func (h *SoporteHandler) MisTickets(c *gin.Context) {
	claims := middleware.GetClaims(c)
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}
	resp, err := h.svc.ListarPorUsuario(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tickets"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Hilos lists every customer thread for the staff inbox, most recent first.
func (h *SoporteHandler) Hilos(c *gin.Context) {
	resp, err := h.svc.ListarAgrupados(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar hilos de soporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Responder posts a staff reply; every pending message from that customer
// flips to answered in the same transaction.
func (h *SoporteHandler) Responder(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var req dto.ResponderTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	uid, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("usuario_id invalido"))
		return
	}
	resp, err := h.svc.Responder(c.Request.Context(), uid, claims.Rol, req.Mensaje)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
