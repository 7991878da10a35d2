package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/internal/domain/access"
	apphttp "github.com/invoicedesk/invoicedesk-api/internal/interfaces/http"
	pkgjwt "github.com/invoicedesk/invoicedesk-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "invoicedesk-test"
	testExpMin    = 60
)

// buildTestApp builds a minimal Fiber app with the auth and permission
// middlewares in front of a dummy handler that returns 200.
func buildTestApp(action access.Action, resource access.Resource) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(action, resource),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
				"user": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app := buildTestApp(access.ActionRead, access.ResourceInvoice)
	resp := request(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := buildTestApp(access.ActionRead, access.ResourceInvoice)
	resp := request(t, app, "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app := buildTestApp(access.ActionRead, access.ResourceInvoice)
	resp := request(t, app, "Bearer not.a.token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegularCanReadInvoices(t *testing.T) {
	app := buildTestApp(access.ActionRead, access.ResourceInvoice)
	resp := request(t, app, tokenForRole(t, "regular"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegularCannotDeleteCompanies(t *testing.T) {
	app := buildTestApp(access.ActionDelete, access.ResourceCompany)
	resp := request(t, app, tokenForRole(t, "regular"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminCanDeleteCompanies(t *testing.T) {
	app := buildTestApp(access.ActionDelete, access.ResourceCompany)
	resp := request(t, app, tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnknownRoleIsForbidden(t *testing.T) {
	app := buildTestApp(access.ActionRead, access.ResourceInvoice)
	resp := request(t, app, tokenForRole(t, "superuser"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
