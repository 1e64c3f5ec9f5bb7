package api

import (
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dmm-municipal/dmm-api/docs"
	"github.com/dmm-municipal/dmm-api/internal/api/handler"
	"github.com/dmm-municipal/dmm-api/internal/api/middleware"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
	apphttp "github.com/dmm-municipal/dmm-api/internal/infrastructure/http"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/http/handlers"
)

// bodyLimit covers two 10 MB DPI images plus the form fields.
const bodyLimit = "25M"

// Deps are the services and settings the router wires into handlers.
type Deps struct {
	Log zerolog.Logger

	Auth           ports.AuthService
	Beneficiarias  ports.BeneficiariaService
	Proyectos      ports.ProyectoService
	Capacitaciones ports.CapacitacionService
	Sectores       ports.SectorService
	Dashboard      ports.DashboardService
	Assignments    ports.AssignmentService

	Cookie       handler.CookieOptions
	FrontendURL  string
	Production   bool
	RateLimit    int
	RateWindow   time.Duration
	LimitCounter httprate.LimitCounter
	Checks       map[string]handlers.Check
	Registry     *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := apphttp.NewServer(apphttp.ServerOptions{
		ErrorHandler: NewHTTPErrorHandler(d.Log),
		Checks:       d.Checks,
		Registry:     d.Registry,
		Middleware: []echo.MiddlewareFunc{
			middleware.RequestLogger(d.Log),
			middleware.SecureHeaders(d.Production),
			middleware.CORS(d.FrontendURL),
			middleware.RateLimit(d.RateLimit, d.RateWindow, d.LimitCounter),
			echomiddleware.BodyLimit(bodyLimit),
		},
	})
	e.Validator = handler.NewValidator()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	beneficiariaHandler := handler.NewBeneficiariaHandler(d.Beneficiarias)
	proyectoHandler := handler.NewProyectoHandler(d.Proyectos)
	capacitacionHandler := handler.NewCapacitacionHandler(d.Capacitaciones)
	sectorHandler := handler.NewSectorHandler(d.Sectores)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)

	authn := middleware.Auth(d.Auth)
	casework := middleware.RequireRoles(domain.CaseworkRoles...)
	viewers := middleware.RequireRoles(domain.ProgramViewers...)
	editors := middleware.RequireRoles(domain.ProgramEditors...)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/registro", authHandler.Register)
	auth.GET("/me", authHandler.Me, authn)
	auth.GET("/roles", authHandler.Roles, authn)
	auth.POST("/crear-usuario", authHandler.CreateUser, authn)

	// --- Beneficiaries ---
	ben := api.Group("/beneficiarias", authn, casework)
	ben.GET("", beneficiariaHandler.List)
	ben.GET("/recientes/lista", beneficiariaHandler.Recent)
	ben.GET("/:id", beneficiariaHandler.Get)
	ben.GET("/:id/imagen/:tipo", beneficiariaHandler.Image)
	ben.POST("", beneficiariaHandler.Create)
	ben.PUT("/:id", beneficiariaHandler.Update)
	ben.DELETE("/:id", beneficiariaHandler.Delete)
	ben.PATCH("/:id/estado", beneficiariaHandler.SetStatus)

	// --- Projects and trainings ---
	programRoutes(api.Group("/proyectos", authn), programHandler{
		list: proyectoHandler.List, get: proyectoHandler.Get,
		create: proyectoHandler.Create, update: proyectoHandler.Update,
		delete: proyectoHandler.Delete, setStatus: proyectoHandler.SetStatus,
	}, handler.NewAssignmentHandler(d.Assignments, domain.OwnerProyecto), viewers, editors)

	programRoutes(api.Group("/capacitaciones", authn), programHandler{
		list: capacitacionHandler.List, get: capacitacionHandler.Get,
		create: capacitacionHandler.Create, update: capacitacionHandler.Update,
		delete: capacitacionHandler.Delete, setStatus: capacitacionHandler.SetStatus,
	}, handler.NewAssignmentHandler(d.Assignments, domain.OwnerCapacitacion), viewers, editors)

	// --- Sectors ---
	sec := api.Group("/sectores", authn)
	sec.GET("", sectorHandler.List, casework)
	sec.GET("/beneficiarios", sectorHandler.BeneficiariasPorSector, casework)
	sec.GET("/:id", sectorHandler.Get, casework)
	sec.POST("", sectorHandler.Create, editors)
	sec.PUT("/:id", sectorHandler.Update, editors)
	sec.DELETE("/:id", sectorHandler.Delete, editors)
	sec.PATCH("/:id/estado", sectorHandler.SetStatus, viewers)

	// --- Dashboard ---
	dash := api.Group("/dashboard", authn, casework)
	dash.GET("/estadisticas", dashboardHandler.Stats)
	dash.GET("/proyectos-estado", dashboardHandler.ProyectosPorEstado)
	dash.GET("/capacitaciones-estado", dashboardHandler.CapacitacionesPorEstado)
	dash.GET("/actividad-reciente", dashboardHandler.ActividadReciente)

	return e
}

// programHandler is the CRUD surface shared by projects and trainings.
type programHandler struct {
	list, get, create, update, delete, setStatus echo.HandlerFunc
}

func programRoutes(g *echo.Group, h programHandler, a *handler.AssignmentHandler, viewers, editors echo.MiddlewareFunc) {
	g.GET("", h.list, viewers)
	g.GET("/:id", h.get, viewers)
	g.PATCH("/:id/estado", h.setStatus, viewers)
	g.POST("", h.create, editors)
	g.PUT("/:id", h.update, editors)
	g.DELETE("/:id", h.delete, editors)

	g.GET("/:id/beneficiarios", a.Linked(domain.RelationBeneficiarios), viewers)
	g.GET("/:id/beneficiarios-detalle", a.Detail, viewers)
	g.GET("/:id/beneficiarios/cantidad", a.Count, viewers)
	g.GET("/:id/sectores", a.Linked(domain.RelationSectores), viewers)

	g.POST("/:id/beneficiarios/:beneficiarioId", a.Assign(domain.RelationBeneficiarios), editors)
	g.DELETE("/:id/beneficiarios/:beneficiarioId", a.Remove(domain.RelationBeneficiarios), editors)
	g.POST("/:id/sectores/:sectorId", a.Assign(domain.RelationSectores), editors)
	g.DELETE("/:id/sectores/:sectorId", a.Remove(domain.RelationSectores), editors)
}
