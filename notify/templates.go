package notify

import (
	"fmt"
	"time"

	"github.com/holistichub/practitioner-hub/models"
)

// NewLead notifies a practitioner that a patient inquiry arrived.
func NewLead(practitioner *models.Practitioner, lead *models.Lead) Notification {
	condition := "not specified"
	if lead.Condition != nil {
		condition = *lead.Condition
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have received a new patient inquiry through your directory listing.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Name:</strong> %s</li>
			<li><strong>Email:</strong> %s</li>
			<li><strong>Phone:</strong> %s</li>
			<li><strong>Condition:</strong> %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>%s</p>
		<p>Log in to your dashboard to follow up.</p>
		<p>Best regards,</p>
		<p>The Practitioner Hub Team</p>
	`, practitioner.DisplayName, lead.Name, lead.Email, lead.Phone, condition, lead.Reference, lead.Message)

	return Notification{
		To:      practitioner.User.Email,
		Subject: "New Patient Inquiry",
		HTML:    body,
	}
}

// ConsultationRequested notifies the practitioner of a new request.
func ConsultationRequested(practitioner *models.Practitioner, patient *models.User, cons *models.Consultation) Notification {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s has requested a consultation with you.</p>
		<ul>
			<li><strong>Reason:</strong> %s</li>
			<li><strong>Requested on:</strong> %s</li>
		</ul>
		<p>Please schedule or decline the request from your dashboard.</p>
		<p>Best regards,</p>
		<p>The Practitioner Hub Team</p>
	`, practitioner.DisplayName, patient.Name, cons.Reason,
		cons.CreatedAt.Format("2006-01-02 15:04:05"))

	return Notification{
		To:      practitioner.User.Email,
		Subject: "New Consultation Request",
		HTML:    body,
	}
}

// ConsultationStatusChanged notifies the patient after a transition.
func ConsultationStatusChanged(patient *models.User, practitioner *models.Practitioner, cons *models.Consultation) Notification {
	scheduled := "to be confirmed"
	if cons.ScheduledAt != nil {
		scheduled = cons.ScheduledAt.Format("2006-01-02 15:04:05")
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your consultation with %s is now <strong>%s</strong>.</p>
		<ul>
			<li><strong>Scheduled for:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Practitioner Hub Team</p>
	`, patient.Name, practitioner.DisplayName, cons.Status, scheduled)

	return Notification{
		To:      patient.Email,
		Subject: fmt.Sprintf("Consultation %s", cons.Status),
		HTML:    body,
	}
}

// ConsultationReminder is sent by the cron job an hour before a scheduled
// consultation.
func ConsultationReminder(patient *models.User, practitioner *models.Practitioner, startsAt time.Time) Notification {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your consultation with %s in one hour.</p>
		<ul>
			<li><strong>Scheduled for:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Practitioner Hub Team</p>
	`, patient.Name, practitioner.DisplayName, startsAt.Format("2006-01-02 15:04:05"))

	return Notification{
		To:      patient.Email,
		Subject: "Reminder: Upcoming Consultation",
		HTML:    body,
	}
}

// EventRegistered confirms an event seat to the registrant.
func EventRegistered(event *models.Event, registration *models.EventRegistration) Notification {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your registration for <strong>%s</strong> is confirmed.</p>
		<ul>
			<li><strong>Location:</strong> %s</li>
			<li><strong>Starts:</strong> %s</li>
			<li><strong>Ends:</strong> %s</li>
		</ul>
		<p>We look forward to seeing you there.</p>
		<p>Best regards,</p>
		<p>The Practitioner Hub Team</p>
	`, registration.Name, event.Title, event.Location,
		event.StartsAt.Format("2006-01-02 15:04:05"),
		event.EndsAt.Format("2006-01-02 15:04:05"))

	return Notification{
		To:      registration.Email,
		Subject: fmt.Sprintf("Registration Confirmed: %s", event.Title),
		HTML:    body,
	}
}
