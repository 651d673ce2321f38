package stats

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hivcare/clinic/internal/domain/patient"
	"github.com/hivcare/clinic/internal/domain/visit"
	"github.com/hivcare/clinic/internal/platform/thaidate"
	"github.com/hivcare/clinic/pkg/pagination"
)

type Handler struct {
	source       Source
	patients     patient.PatientRepository
	visits       visit.VisitRepository
	appointments visit.AppointmentRepository

	overdueVLMonths int
	overdueFUMonths int
}

func NewHandler(source Source, patients patient.PatientRepository, visits visit.VisitRepository, appointments visit.AppointmentRepository, overdueVLMonths, overdueFUMonths int) *Handler {
	return &Handler{
		source:          source,
		patients:        patients,
		visits:          visits,
		appointments:    appointments,
		overdueVLMonths: overdueVLMonths,
		overdueFUMonths: overdueFUMonths,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/overview", h.GetOverview)
	g.GET("/day", h.GetDay)
}

// GetDashboard serves the daily snapshot: registered patient count, scheme
// breakdown, today's examined and new patient counts and the overdue lists.
func (h *Handler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	patients, err := h.source.Patients(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	visits, err := h.source.Visits(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	labs, err := h.source.Labs(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	d := BuildDashboard(patients, visits, labs, time.Now(), h.overdueVLMonths, h.overdueFUMonths)
	return c.JSON(http.StatusOK, d)
}

// GetOverview serves the clinic-wide cross-tabs and time series as named
// tables, or as concatenated HTML fragments with ?format=html.
func (h *Handler) GetOverview(c echo.Context) error {
	ctx := c.Request().Context()

	patients, err := h.source.Patients(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	visits, err := h.source.Visits(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	labs, err := h.source.Labs(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tables := BuildOverview(patients, visits, labs, time.Now())
	if c.QueryParam("format") == "html" {
		classes := strings.Fields(strings.ReplaceAll(c.QueryParam("class"), ",", " "))
		var b strings.Builder
		for _, t := range tables {
			b.WriteString(t.HTML(classes...))
		}
		return c.HTML(http.StatusOK, b.String())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tables": tables})
}

// dayPatient is the identity slice attached to day-view rows.
type dayPatient struct {
	HN       string  `json:"hn"`
	Name     string  `json:"name"`
	ClinicID *string `json:"clinicID"`
}

// GetDay serves the front-desk view for one day: scheduled appointments and
// examined visits, each paginated, with the identities of the patients
// involved.
func (h *Handler) GetDay(c echo.Context) error {
	dateParam := c.QueryParam("date")
	if dateParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	day, err := thaidate.Parse(dateParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date: "+dateParam)
	}

	ctx := c.Request().Context()
	p := pagination.FromContext(c)

	appointments, appointmentTotal, err := h.appointments.ListByDate(ctx, day, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	visits, visitTotal, err := h.visits.ListByDate(ctx, day, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ids := make(map[uuid.UUID]bool)
	for _, a := range appointments {
		ids[a.PatientID] = true
	}
	for _, v := range visits {
		ids[v.PatientID] = true
	}
	identities := make(map[string]dayPatient, len(ids))
	for id := range ids {
		pt, err := h.patients.GetByID(ctx, id)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		identities[id.String()] = dayPatient{HN: pt.HN, Name: pt.Name, ClinicID: pt.ClinicID}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":         day.Format("2006-01-02"),
		"appointments": pagination.NewResponse(appointments, appointmentTotal, p.Limit, p.Offset),
		"examined":     pagination.NewResponse(visits, visitTotal, p.Limit, p.Offset),
		"patients":     identities,
	})
}
