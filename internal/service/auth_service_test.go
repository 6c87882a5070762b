package service_test

import (
	"context"
	"testing"

	"floreria/internal/config"
	"floreria/internal/dto"
	"floreria/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func newAuthFixture(t *testing.T) (service.AuthService, *stubUsuarioRepo) {
	t.Helper()
	usuarios := newStubUsuarioRepo()
	return service.NewAuthService(usuarios, testConfig()), usuarios
}

func registroAna() dto.RegistroRequest {
	return dto.RegistroRequest{
		Email:    "ana@example.com",
		Nombre:   "Ana Torres",
		Password: "florcita123",
	}
}

func TestRegistroYLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.Registro(ctx, registroAna())
	require.NoError(t, err)
	assert.Equal(t, "cliente", reg.User.Rol)
	assert.Equal(t, "bearer", reg.TokenType)
	assert.Equal(t, 8*3600, reg.ExpiresIn)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)

	login, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "florcita123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", login.User.Nombre)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Registro(ctx, registroAna())
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "otra-clave",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestRegistro_EmailDuplicado(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Registro(ctx, registroAna())
	require.NoError(t, err)

	_, err = svc.Registro(ctx, registroAna())
	require.Error(t, err)
	assert.EqualError(t, err, "ya existe una cuenta con ese email")
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.Registro(ctx, registroAna())
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, renovado.User.ID)
	assert.NotEmpty(t, renovado.AccessToken)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.EqualError(t, err, "refresh token invalido o expirado")
}

func TestRefresh_UsuarioDesactivado(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.Registro(ctx, registroAna())
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarUsuario(ctx, uuid.MustParse(reg.User.ID)))

	_, err = svc.Refresh(ctx, reg.RefreshToken)
	require.Error(t, err)
	assert.EqualError(t, err, "usuario no encontrado o inactivo")
}

func TestCrearYActualizarUsuario(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	creado, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Email:    "supervisor@floreria.local",
		Nombre:   "Carla Núñez",
		Password: "clave-segura",
		Rol:      "supervisor",
	})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", creado.Rol)

	actualizado, err := svc.ActualizarUsuario(ctx, uuid.MustParse(creado.ID), dto.ActualizarUsuarioRequest{
		Rol: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", actualizado.Rol)
	// Fields not in the request keep their values.
	assert.Equal(t, "Carla Núñez", actualizado.Nombre)
}
