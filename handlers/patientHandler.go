package handlers

import (
	"PatientDesk/middlewares"
	"PatientDesk/models"
	"PatientDesk/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service      *services.PatientService
	appointments *services.AppointmentService
}

func NewPatientHandler(service *services.PatientService, appointments *services.AppointmentService) *PatientHandler {
	return &PatientHandler{service: service, appointments: appointments}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req models.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, services.NewValidationError(err))
		return
	}
	patient, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusCreated)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patients, http.StatusOK)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req models.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, services.NewValidationError(err))
		return
	}
	patient, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}

// DeletePatient removes the patient and every appointment it owns.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPatientAppointments lists a patient's appointments in creation order.
func (h *PatientHandler) GetPatientAppointments(c *gin.Context) {
	appointments, err := h.appointments.ListByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}
