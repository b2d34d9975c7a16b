package utils

import (
	"PatientDesk/models"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether enough settings are present to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port > 0
}

// EmailNotifier sends appointment confirmations over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

// AppointmentScheduled mails the patient a confirmation of a new appointment.
// It gives up when ctx is done; gomail itself has no deadline once connected.
func (n *EmailNotifier) AppointmentScheduled(ctx context.Context, patient *models.Patient, appointment *models.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if patient == nil || appointment == nil {
		return errors.New("patient and appointment are required")
	}
	m := buildAppointmentMessage(n.from, patient, appointment)

	sent := make(chan error, 1)
	go func() {
		sent <- n.dialer.DialAndSend(m)
	}()

	select {
	case err := <-sent:
		if err != nil {
			return fmt.Errorf("failed to send appointment confirmation: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("appointment confirmation abandoned: %w", ctx.Err())
	}
}

var appointmentHTML = template.Must(template.New("appointment").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Appointment Confirmation</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			background-color: #f4f4f4;
		}
		.container {
			background-color: #ffffff;
			margin: 20px auto;
			padding: 20px;
			border-radius: 8px;
			max-width: 600px;
		}
		.when {
			font-weight: bold;
			color: #007bff;
		}
	</style>
</head>
<body>
	<div class="container">
		<h1>Appointment Confirmation</h1>
		<p>Dear {{.FirstName}} {{.LastName}},</p>
		<p>Your appointment has been scheduled for:</p>
		<p class="when">{{.When}}</p>
		<p>Reason: {{.Reason}}</p>
		<p>Reference: {{.Reference}}</p>
	</div>
</body>
</html>
`))

type appointmentMail struct {
	FirstName string
	LastName  string
	When      string
	Reason    string
	Reference string
}

func newAppointmentMail(patient *models.Patient, appointment *models.Appointment) appointmentMail {
	return appointmentMail{
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		When:      appointment.AppointmentDateTime.UTC().Format("Monday, January 2, 2006 at 15:04"),
		Reason:    appointment.Reason,
		Reference: appointment.ID,
	}
}

// renderAppointmentHTML writes the HTML body. Patient-supplied fields are
// escaped by html/template.
func renderAppointmentHTML(w io.Writer, mail appointmentMail) error {
	return appointmentHTML.Execute(w, mail)
}

func buildAppointmentMessage(from string, patient *models.Patient, appointment *models.Appointment) *gomail.Message {
	mail := newAppointmentMail(patient, appointment)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", patient.Email)
	m.SetHeader("Subject", "Appointment Confirmation")

	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s %s,\n\nYour appointment has been scheduled for:\n%s\n\nReason: %s\nReference: %s\n",
		mail.FirstName, mail.LastName, mail.When, mail.Reason, mail.Reference))
	m.AddAlternativeWriter("text/html", func(w io.Writer) error {
		return renderAppointmentHTML(w, mail)
	})
	return m
}
