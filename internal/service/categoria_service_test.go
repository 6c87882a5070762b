package service_test

import (
	"context"
	"testing"

	"floreria/internal/dto"
	"floreria/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearCategoria(t *testing.T) {
	cats := newStubCategoriaRepo()
	svc := service.NewCategoriaService(cats)
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearCategoriaRequest{ID: "ramos", Nombre: "Ramos"})
	require.NoError(t, err)
	assert.Equal(t, "ramos", resp.ID)
	assert.Equal(t, "Ramos", resp.Nombre)

	_, err = svc.Crear(ctx, dto.CrearCategoriaRequest{ID: "ramos", Nombre: "Otros ramos"})
	require.Error(t, err)
	assert.EqualError(t, err, "ya existe una categoría con ese id")
}

func TestDesactivarCategoria(t *testing.T) {
	cats := newStubCategoriaRepo("plantas")
	svc := service.NewCategoriaService(cats)
	ctx := context.Background()

	require.NoError(t, svc.Desactivar(ctx, "plantas"))

	listado, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, listado)

	err = svc.Desactivar(ctx, "no-existe")
	require.Error(t, err)
	assert.EqualError(t, err, "categoría no encontrada")
}
