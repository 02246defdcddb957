package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wardview/wardview/dataset"
	"github.com/wardview/wardview/render"
	"github.com/wardview/wardview/views"
)

// ============================================================================
// SERVER — Dashboard HTTP Surface
// ============================================================================
// Read-only. Views are computed once at startup; every handler serves from
// that fixed snapshot. No session state, no write path.
//
// Routes:
//   GET /                 dashboard page
//   GET /charts/:file     PNG for chart-shaped views ("gender.png")
//   GET /api/views        all view payloads
//   GET /api/views/:id    one view payload
//   GET /api/schema       dataset schema description
//   GET /healthz          liveness + row count
// ============================================================================

// App holds the immutable dashboard state.
type App struct {
	table  *dataset.Table
	schema *dataset.Schema
	views  []views.View
	byID   map[string]views.View
	page   *template.Template
}

// New builds an App over a loaded table and its computed views.
func New(t *dataset.Table, vs []views.View) *App {
	byID := make(map[string]views.View, len(vs))
	for _, v := range vs {
		byID[v.ID] = v
	}
	return &App{
		table:  t,
		schema: dataset.Describe(t),
		views:  vs,
		byID:   byID,
		page:   template.Must(template.New("dashboard").Parse(pageHTML)),
	}
}

// Echo assembles the route table. Exposed separately so tests can drive the
// handler without a listening socket.
func (a *App) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/", a.handleIndex)
	e.GET("/charts/:file", a.handleChartPNG)
	e.GET("/api/views", a.handleViews)
	e.GET("/api/views/:id", a.handleView)
	e.GET("/api/schema", a.handleSchema)
	e.GET("/healthz", a.handleHealthz)
	return e
}

// Start serves the dashboard until the listener fails.
func (a *App) Start(addr string) error {
	return a.Echo().Start(addr)
}

// ============================================================================
// HANDLERS
// ============================================================================

type pageData struct {
	Views       []views.View
	PayloadJSON template.JS
}

func (a *App) handleIndex(c echo.Context) error {
	payload, err := json.Marshal(a.views)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return a.page.Execute(c.Response(), pageData{
		Views:       a.views,
		PayloadJSON: template.JS(payload),
	})
}

func (a *App) handleChartPNG(c echo.Context) error {
	file := c.Param("file")
	id := strings.TrimSuffix(file, ".png")
	if id == file {
		return echo.NewHTTPError(http.StatusNotFound, "chart files end in .png")
	}

	v, ok := a.byID[id]
	if !ok || !render.Renderable(v) {
		return echo.NewHTTPError(http.StatusNotFound, "no such chart: "+id)
	}

	png, err := render.PNG(v, render.Options{Month: c.QueryParam("month")})
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (a *App) handleViews(c echo.Context) error {
	return c.JSON(http.StatusOK, a.views)
}

func (a *App) handleView(c echo.Context) error {
	v, ok := a.byID[c.Param("id")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such view: "+c.Param("id"))
	}
	return c.JSON(http.StatusOK, v)
}

func (a *App) handleSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, a.schema)
}

func (a *App) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"rows":   len(a.table.Patients),
		"views":  len(a.views),
	})
}
