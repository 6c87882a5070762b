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

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func carritoUsuario(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return uuid.Nil, false
	}
	return uid, true
}

func (h *CarritoHandler) Obtener(c *gin.Context) {
	uid, ok := carritoUsuario(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el carrito"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Agregar(c *gin.Context) {
	uid, ok := carritoUsuario(c)
	if !ok {
		return
	}
	var req dto.AgregarAlCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Quitar(c *gin.Context) {
	uid, ok := carritoUsuario(c)
	if !ok {
		return
	}
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de producto invalido"))
		return
	}
	resp, err := h.svc.Quitar(c.Request.Context(), uid, productoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	uid, ok := carritoUsuario(c)
	if !ok {
		return
	}
	if err := h.svc.Vaciar(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al vaciar el carrito"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout turns the cart into a sale; the cart is cleared only after the
// sale committed.
func (h *CarritoHandler) Checkout(c *gin.Context) {
	uid, ok := carritoUsuario(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
