package controllers

import (
	"PatientDesk/handlers"

	"github.com/gin-gonic/gin"
)

func SetupPatientRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, appointmentHandler *handlers.AppointmentHandler) {
	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:id", patientHandler.GetPatientByID)
	router.PUT("/patients/:id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)
	router.GET("/patients/:id/appointments", patientHandler.GetPatientAppointments)

	router.POST("/appointments", appointmentHandler.CreateAppointment)
	router.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
	router.PATCH("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
	router.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)
	router.GET("/appointments", appointmentHandler.GetAllAppointments)
}
