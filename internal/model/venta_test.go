package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstadoDesdeEnvio(t *testing.T) {
	now := time.Now()

	assert.Equal(t, VentaPendiente, EstadoDesdeEnvio(nil))
	assert.Equal(t, VentaPendiente, EstadoDesdeEnvio(&VentaEnvio{Recibido: &now}))
	assert.Equal(t, VentaPreparando, EstadoDesdeEnvio(&VentaEnvio{Recibido: &now, Preparacion: &now}))
	assert.Equal(t, VentaEnCamino, EstadoDesdeEnvio(&VentaEnvio{Recibido: &now, Preparacion: &now, Despachado: &now}))
	assert.Equal(t, VentaEnCamino, EstadoDesdeEnvio(&VentaEnvio{Recibido: &now, Preparacion: &now, Despachado: &now, Transito: &now, Reparto: &now}))
	assert.Equal(t, VentaEntregada, EstadoDesdeEnvio(&VentaEnvio{Recibido: &now, Preparacion: &now, Despachado: &now, Transito: &now, Reparto: &now, Entregado: &now}))

	// Anulado wins over any progress, even a delivered shipment's timestamps.
	assert.Equal(t, VentaAnulada, EstadoDesdeEnvio(&VentaEnvio{Recibido: &now, Entregado: &now, Anulado: &now}))
}

func TestEtapaDevuelveSlot(t *testing.T) {
	e := &VentaEnvio{}
	for _, nombre := range EtapasEnvio {
		assert.NotNil(t, e.Etapa(nombre), nombre)
	}
	assert.Nil(t, e.Etapa("volando"))
}
