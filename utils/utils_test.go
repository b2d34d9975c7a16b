package utils

import (
	"PatientDesk/models"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDAllocatorIssuesUniqueRandomIDs(t *testing.T) {
	var alloc IDAllocator = UUIDAllocator{}
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := alloc.NewID()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		_, dup := seen[id]
		require.False(t, dup, "identifier %s issued twice", id)
		seen[id] = struct{}{}
	}
}

func TestSMTPConfigEnabled(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.False(t, SMTPConfig{Host: "smtp.example.com"}.Enabled())
	assert.True(t, SMTPConfig{Host: "smtp.example.com", Port: 587}.Enabled())
}

func TestBuildAppointmentMessage(t *testing.T) {
	patient := &models.Patient{ID: "p-1", FirstName: "Emma", LastName: "Johnson", Email: "emma@x.com"}
	appointment := &models.Appointment{
		ID:                  "a-1",
		PatientID:           "p-1",
		AppointmentDateTime: time.Date(2024, time.December, 15, 10, 0, 0, 0, time.UTC),
		Reason:              "checkup",
		Status:              models.StatusScheduled,
	}

	m := buildAppointmentMessage("clinic@example.com", patient, appointment)
	assert.Equal(t, []string{"emma@x.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"clinic@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"Appointment Confirmation"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sunday, December 15, 2024 at 10:00")
	assert.Contains(t, buf.String(), "checkup")
}

func TestAppointmentHTMLEscapesPatientInput(t *testing.T) {
	patient := &models.Patient{FirstName: `<a href="http://evil">click</a>`, LastName: "Johnson", Email: "emma@x.com"}
	appointment := &models.Appointment{
		ID:                  "a-1",
		AppointmentDateTime: time.Date(2024, time.December, 15, 10, 0, 0, 0, time.UTC),
		Reason:              "<img src=x>",
	}

	var buf bytes.Buffer
	require.NoError(t, renderAppointmentHTML(&buf, newAppointmentMail(patient, appointment)))
	body := buf.String()

	assert.NotContains(t, body, "<a href")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;a href=")
	assert.Contains(t, body, "&lt;img src=x&gt;")
	assert.Contains(t, body, "Sunday, December 15, 2024 at 10:00")

	var msg bytes.Buffer
	_, err := buildAppointmentMessage("clinic@example.com", patient, appointment).WriteTo(&msg)
	require.NoError(t, err)
}

func TestEmailNotifierRejectsCancelledContext(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "localhost", Port: 2525, From: "clinic@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.AppointmentScheduled(ctx, &models.Patient{}, &models.Appointment{})
	assert.ErrorIs(t, err, context.Canceled)
}
