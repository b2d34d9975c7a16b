package handlers

import (
	"PatientDesk/middlewares"
	"PatientDesk/models"
	"PatientDesk/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, services.NewValidationError(err))
		return
	}
	appointment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusCreated)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}

// GetAllAppointments lists every appointment, or only one patient's when
// the patientId query parameter is present.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	var (
		appointments []models.AppointmentResponse
		err          error
	)
	if patientID, ok := c.GetQuery("patientId"); ok {
		appointments, err = h.service.ListByPatient(c.Request.Context(), patientID)
	} else {
		appointments, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}

func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointment, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), c.Query("status"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
