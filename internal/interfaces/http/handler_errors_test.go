package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// Un body JSON malformado es un error de validación: 422, no 400.
func TestHandlers_BodyMalformadoRetorna422(t *testing.T) {
	app := fiber.New()
	handler := apphttp.NewTransferHandler(nil) // BodyParser falla antes de tocar el caso de uso
	app.Post("/api/stock-transfers", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/stock-transfers", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode,
		"cuerpo malformado debe mapear a 422 como cualquier error de validación")
}

func TestHandlers_BodyMalformadoEnCrearArticuloRetorna422(t *testing.T) {
	app := fiber.New()
	handler := apphttp.NewInventoryItemHandler(nil)
	app.Post("/api/inventory", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"name": `))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
