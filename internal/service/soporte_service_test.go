package service_test

import (
	"context"
	"testing"

	"floreria/internal/model"
	"floreria/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type soporteFixture struct {
	svc      service.SoporteService
	tickets  *stubSoporteRepo
	usuarios *stubUsuarioRepo
	cliente  *model.Usuario
}

func newSoporteFixture(t *testing.T) *soporteFixture {
	t.Helper()
	tickets := &stubSoporteRepo{}
	usuarios := newStubUsuarioRepo()
	cliente := usuarios.agregar(&model.Usuario{
		Email:  "ana@example.com",
		Nombre: "Ana Torres",
		Rol:    "cliente",
		Activo: true,
	})
	return &soporteFixture{
		svc:      service.NewSoporteService(tickets, usuarios),
		tickets:  tickets,
		usuarios: usuarios,
		cliente:  cliente,
	}
}

func TestPublicarMensaje(t *testing.T) {
	f := newSoporteFixture(t)

	resp, err := f.svc.PublicarMensaje(context.Background(), f.cliente.ID, "¿Mi pedido llega hoy?")
	require.NoError(t, err)

	assert.Equal(t, "Ana Torres", resp.ClienteNombre)
	assert.Equal(t, "ana@example.com", resp.ClienteEmail)
	assert.True(t, resp.EsCliente)
	assert.Equal(t, model.TicketPendiente, resp.Estado)
	assert.Nil(t, resp.RespondidoPor)
}

func TestPublicarMensaje_Vacio(t *testing.T) {
	f := newSoporteFixture(t)

	_, err := f.svc.PublicarMensaje(context.Background(), f.cliente.ID, "")
	require.Error(t, err)
	assert.EqualError(t, err, "el mensaje no puede estar vacío")
}

func TestResponder_MarcaPendientesComoRespondidos(t *testing.T) {
	f := newSoporteFixture(t)
	ctx := context.Background()

	_, err := f.svc.PublicarMensaje(ctx, f.cliente.ID, "¿Mi pedido llega hoy?")
	require.NoError(t, err)
	_, err = f.svc.PublicarMensaje(ctx, f.cliente.ID, "Sigo esperando…")
	require.NoError(t, err)

	resp, err := f.svc.Responder(ctx, f.cliente.ID, "admin", "Sale hoy en la tarde")
	require.NoError(t, err)

	assert.False(t, resp.EsCliente)
	assert.Equal(t, model.TicketRespondido, resp.Estado)
	require.NotNil(t, resp.RespondidoPor)
	assert.Equal(t, "Administrador", *resp.RespondidoPor)

	// Both customer messages flipped to answered.
	for _, ticket := range f.tickets.tickets {
		assert.Equal(t, model.TicketRespondido, ticket.Estado)
	}
}

func TestResponder_EtiquetaSupervisor(t *testing.T) {
	f := newSoporteFixture(t)

	resp, err := f.svc.Responder(context.Background(), f.cliente.ID, "supervisor", "Revisado")
	require.NoError(t, err)
	require.NotNil(t, resp.RespondidoPor)
	assert.Equal(t, "Supervisor", *resp.RespondidoPor)
}

func TestListarAgrupados(t *testing.T) {
	f := newSoporteFixture(t)
	ctx := context.Background()

	otro := f.usuarios.agregar(&model.Usuario{
		Email:  "luis@example.com",
		Nombre: "Luis Paredes",
		Rol:    "cliente",
		Activo: true,
	})

	_, err := f.svc.PublicarMensaje(ctx, f.cliente.ID, "¿Tienen rosas azules?")
	require.NoError(t, err)
	_, err = f.svc.PublicarMensaje(ctx, f.cliente.ID, "¿Hola?")
	require.NoError(t, err)
	_, err = f.svc.PublicarMensaje(ctx, otro.ID, "Quiero cambiar mi dirección")
	require.NoError(t, err)

	hilos, err := f.svc.ListarAgrupados(ctx)
	require.NoError(t, err)
	require.Len(t, hilos, 2)

	porUsuario := make(map[string]int)
	for _, h := range hilos {
		porUsuario[h.ClienteNombre] = h.Pendientes
	}
	assert.Equal(t, 2, porUsuario["Ana Torres"])
	assert.Equal(t, 1, porUsuario["Luis Paredes"])
}

func TestListarPorUsuario(t *testing.T) {
	f := newSoporteFixture(t)
	ctx := context.Background()

	_, err := f.svc.PublicarMensaje(ctx, f.cliente.ID, "Primer mensaje")
	require.NoError(t, err)
	_, err = f.svc.Responder(ctx, f.cliente.ID, "admin", "Respuesta")
	require.NoError(t, err)

	hilo, err := f.svc.ListarPorUsuario(ctx, f.cliente.ID)
	require.NoError(t, err)
	require.Len(t, hilo, 2)
}
