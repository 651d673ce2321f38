package datadict

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hivcare/clinic/internal/platform/thaidate"
	"github.com/hivcare/clinic/pkg/tabular"
)

type Handler struct {
	builder  *Builder
	defaults Options
}

// NewHandler builds the report handler. defaults seeds the per-request
// rendering options, letting deployment config set the date format and
// array delimiter; zero fields fall back to DefaultOptions.
func NewHandler(builder *Builder, defaults Options) *Handler {
	base := DefaultOptions()
	if defaults.DateFormat != "" {
		base.DateFormat = defaults.DateFormat
	}
	if defaults.JoinArrayBy != "" {
		base.JoinArrayBy = defaults.JoinArrayBy
	}
	return &Handler{builder: builder, defaults: base}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/datadict", h.GetDataDict)
	g.GET("/datadict/export", h.ExportDataDict)
}

// GetDataDict serves the assembled data dictionary as JSON rows, or as an
// HTML table fragment with ?format=html.
func (h *Handler) GetDataDict(c echo.Context) error {
	r, opts, err := h.parseParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.builder.Build(c.Request().Context(), r)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ref := referenceTime(r)
	if c.QueryParam("format") == "html" {
		return c.HTML(http.StatusOK, Render(rows, opts, ref).HTML(tableClasses(c)...))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"columns": Columns,
		"rows":    RenderMaps(rows, opts, ref),
		"total":   len(rows),
	})
}

// ExportDataDict streams the data dictionary as a single-sheet workbook.
func (h *Handler) ExportDataDict(c echo.Context) error {
	r, opts, err := h.parseParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.builder.Build(c.Request().Context(), r)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	table := Render(rows, opts, referenceTime(r))

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="data-dictionary.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return tabular.WriteWorkbook(c.Response(), []*tabular.Table{table})
}

// tableClasses reads the ?class= parameter as a comma- or space-separated
// CSS class list for HTML output.
func tableClasses(c echo.Context) []string {
	return strings.Fields(strings.ReplaceAll(c.QueryParam("class"), ",", " "))
}

// referenceTime anchors age calculation: the range's end date when the
// caller bounded the report, otherwise now.
func referenceTime(r DateRange) time.Time {
	if r.End != nil {
		return *r.End
	}
	return time.Now()
}

func (h *Handler) parseParams(c echo.Context) (DateRange, Options, error) {
	var r DateRange
	if s := c.QueryParam("start_date"); s != "" {
		t, err := thaidate.Parse(s)
		if err != nil {
			return r, Options{}, err
		}
		r.Start = &t
	}
	if s := c.QueryParam("end_date"); s != "" {
		t, err := thaidate.Parse(s)
		if err != nil {
			return r, Options{}, err
		}
		r.End = &t
	}
	if err := r.Validate(); err != nil {
		return r, Options{}, err
	}

	opts := h.defaults
	if v := c.QueryParam("join_by"); v != "" {
		opts.JoinArrayBy = v
	}
	if v := c.QueryParam("date_format"); v != "" {
		opts.DateFormat = v
	}
	opts.AgeAsString = c.QueryParam("age_as") == "string"
	opts.IDsAsString = c.QueryParam("ids_as") == "string"
	return r, opts, nil
}
