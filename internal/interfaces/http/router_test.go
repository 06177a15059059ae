package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/simindustries/bizdocs-api/internal/interfaces/http"
)

// Every delete route sits behind the admin role gate; a non-admin token must
// be turned away before any handler runs.
func TestRouter_DeletesAreAdminOnly(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	paths := []string{
		"/api/customers/1",
		"/api/purchase-orders/1",
		"/api/invoices/1",
		"/api/challans/1",
		"/api/quotations/1",
	}
	for _, p := range paths {
		req := httptest.NewRequest(http.MethodDelete, p, nil)
		req.Header.Set("Authorization", tokenForRole(t, "accounts"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode,
			"DELETE %s must require the admin role", p)
	}
}
