package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoicedesk/invoicedesk-api/internal/application/auth"
	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/usecase"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/access"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	CustomerUC *usecase.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	InvoiceUC  *billing.InvoiceUseCase
	ExportUC   *billing.ExportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registers the API routes. Everything except login lives behind the
// Bearer token middleware; each mutating route additionally passes the
// role/permission table.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	allow := RequirePermission

	// Auth (login is the only public route)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	authProtected := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	authProtected.Post("/register", allow(access.ActionManageUsers, access.ResourceUser), authHandler.Register)
	authProtected.Get("/me", authHandler.Me)
	authProtected.Put("/me", authHandler.UpdateMe)
	authProtected.Post("/change-password", authHandler.ChangePassword)
	authProtected.Get("/users", allow(access.ActionRead, access.ResourceUser), authHandler.ListUsers)
	authProtected.Get("/users/:id", allow(access.ActionRead, access.ResourceUser), authHandler.GetUser)
	authProtected.Put("/users/:id", allow(access.ActionManageUsers, access.ResourceUser), authHandler.UpdateUser)
	authProtected.Delete("/users/:id", allow(access.ActionManageUsers, access.ResourceUser), authHandler.DeleteUser)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.InvoiceUC)
	companies.Post("/", allow(access.ActionCreate, access.ResourceCompany), companyHandler.Create)
	companies.Get("/", allow(access.ActionRead, access.ResourceCompany), companyHandler.List)
	companies.Get("/search", allow(access.ActionRead, access.ResourceCompany), companyHandler.Search)
	companies.Get("/stats", allow(access.ActionRead, access.ResourceCompany), companyHandler.Stats)
	companies.Get("/:id", allow(access.ActionRead, access.ResourceCompany), companyHandler.GetByID)
	companies.Get("/:id/invoices", allow(access.ActionRead, access.ResourceInvoice), companyHandler.Invoices)
	companies.Put("/:id", allow(access.ActionUpdate, access.ResourceCompany), companyHandler.Update)
	companies.Delete("/:id", allow(access.ActionDelete, access.ResourceCompany), companyHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.InvoiceUC, deps.ExportUC)
	customers.Post("/", allow(access.ActionCreate, access.ResourceCustomer), customerHandler.Create)
	customers.Get("/", allow(access.ActionRead, access.ResourceCustomer), customerHandler.List)
	customers.Get("/search", allow(access.ActionRead, access.ResourceCustomer), customerHandler.Search)
	customers.Get("/stats", allow(access.ActionRead, access.ResourceCustomer), customerHandler.Stats)
	customers.Get("/export", allow(access.ActionExport, access.ResourceCustomer), customerHandler.Export)
	customers.Get("/:id", allow(access.ActionRead, access.ResourceCustomer), customerHandler.GetByID)
	customers.Get("/:id/invoices", allow(access.ActionRead, access.ResourceInvoice), customerHandler.Invoices)
	customers.Put("/:id", allow(access.ActionUpdate, access.ResourceCustomer), customerHandler.Update)
	customers.Delete("/:id", allow(access.ActionDelete, access.ResourceCustomer), customerHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ExportUC)
	products.Post("/", allow(access.ActionCreate, access.ResourceProduct), productHandler.Create)
	products.Get("/", allow(access.ActionRead, access.ResourceProduct), productHandler.List)
	products.Get("/categories", allow(access.ActionRead, access.ResourceProduct), productHandler.Categories)
	products.Get("/search", allow(access.ActionRead, access.ResourceProduct), productHandler.Search)
	products.Get("/stats", allow(access.ActionRead, access.ResourceProduct), productHandler.Stats)
	products.Get("/export", allow(access.ActionExport, access.ResourceProduct), productHandler.Export)
	products.Get("/:id", allow(access.ActionRead, access.ResourceProduct), productHandler.GetByID)
	products.Put("/:id", allow(access.ActionUpdate, access.ResourceProduct), productHandler.Update)
	products.Delete("/:id", allow(access.ActionDelete, access.ResourceProduct), productHandler.Delete)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC)
	invoices.Post("/", allow(access.ActionCreate, access.ResourceInvoice), invoiceHandler.Create)
	invoices.Get("/", allow(access.ActionRead, access.ResourceInvoice), invoiceHandler.List)
	invoices.Get("/search", allow(access.ActionRead, access.ResourceInvoice), invoiceHandler.Search)
	invoices.Get("/stats", allow(access.ActionRead, access.ResourceInvoice), invoiceHandler.Stats)
	invoices.Get("/next-number", allow(access.ActionRead, access.ResourceInvoice), invoiceHandler.NextNumber)
	invoices.Get("/export", allow(access.ActionExport, access.ResourceInvoice), invoiceHandler.Export)
	invoices.Get("/:id", allow(access.ActionRead, access.ResourceInvoice), invoiceHandler.GetByID)
	invoices.Put("/:id", allow(access.ActionUpdate, access.ResourceInvoice), invoiceHandler.Update)
	invoices.Delete("/:id", allow(access.ActionDelete, access.ResourceInvoice), invoiceHandler.Delete)
	invoices.Post("/:id/items", allow(access.ActionUpdate, access.ResourceInvoice), invoiceHandler.AddItem)
	invoices.Put("/:id/items/:itemId", allow(access.ActionUpdate, access.ResourceInvoice), invoiceHandler.UpdateItem)
	invoices.Delete("/:id/items/:itemId", allow(access.ActionUpdate, access.ResourceInvoice), invoiceHandler.DeleteItem)
	invoices.Post("/:id/calculate", allow(access.ActionUpdate, access.ResourceInvoice), invoiceHandler.Calculate)
	invoices.Put("/:id/status", allow(access.ActionUpdate, access.ResourceInvoice), invoiceHandler.UpdateStatus)
	invoices.Post("/:id/duplicate", allow(access.ActionCreate, access.ResourceInvoice), invoiceHandler.Duplicate)
	invoices.Get("/:id/export/pdf", allow(access.ActionExport, access.ResourceInvoice), invoiceHandler.ExportPDF)
	invoices.Get("/:id/export/excel", allow(access.ActionExport, access.ResourceInvoice), invoiceHandler.ExportExcel)
}
