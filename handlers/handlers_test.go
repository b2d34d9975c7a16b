package handlers

import (
	"PatientDesk/repositories"
	"PatientDesk/services"
	"PatientDesk/testutil"
	"PatientDesk/utils"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	ids := utils.UUIDAllocator{}
	patients := services.NewPatientService(repositories.NewPatientRepository(db, nil), ids)
	appointments := services.NewAppointmentService(repositories.NewAppointmentRepository(db, nil), ids)

	ph := NewPatientHandler(patients, appointments)
	ah := NewAppointmentHandler(appointments)

	r := gin.New()
	r.POST("/patients", ph.CreatePatient)
	r.GET("/patients/:id", ph.GetPatientByID)
	r.GET("/patients/:id/appointments", ph.GetPatientAppointments)
	r.POST("/appointments", ah.CreateAppointment)
	r.GET("/appointments", ah.GetAllAppointments)
	r.PATCH("/appointments/:id/status", ah.UpdateAppointmentStatus)
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePatientHandler(t *testing.T) {
	r := newRouter(t)

	w := send(r, http.MethodPost, "/patients", `{"firstName":"Emma","lastName":"Johnson","email":"emma@x.com","dateOfBirth":"1985-03-15"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body["id"], 36)
	assert.Equal(t, "1985-03-15", body["dateOfBirth"])
	assert.Nil(t, body["phone"])
}

func TestCreatePatientHandler_BadBodies(t *testing.T) {
	r := newRouter(t)

	for name, body := range map[string]string{
		"malformed json": `{"firstName":`,
		"bad date":       `{"firstName":"Emma","lastName":"Johnson","email":"emma@x.com","dateOfBirth":"15-03-1985"}`,
		"missing fields": `{"firstName":"Emma"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := send(r, http.MethodPost, "/patients", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestGetPatientHandler_NotFound(t *testing.T) {
	r := newRouter(t)

	w := send(r, http.MethodGet, "/patients/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Patient not found with id: unknown"}`, w.Body.String())
}

func TestAppointmentHandlers(t *testing.T) {
	r := newRouter(t)

	w := send(r, http.MethodPost, "/patients", `{"firstName":"Emma","lastName":"Johnson","email":"emma@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var patient struct{ ID string }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patient))

	w = send(r, http.MethodPost, "/appointments", `{"patientId":"`+patient.ID+`","appointmentDateTime":"2024-12-15 10:00:00","reason":"checkup"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appointment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appointment))
	assert.Equal(t, "SCHEDULED", appointment.Status)

	w = send(r, http.MethodPatch, "/appointments/"+appointment.ID+"/status", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "status query parameter is required")

	w = send(r, http.MethodPatch, "/appointments/"+appointment.ID+"/status?status=no_show", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"NO_SHOW"`)

	w = send(r, http.MethodGet, "/appointments?patientId=other", "")
	assert.Equal(t, "[]", w.Body.String())

	w = send(r, http.MethodGet, "/patients/"+patient.ID+"/appointments", "")
	assert.Contains(t, w.Body.String(), appointment.ID)
}
