package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/notify"
)

// StartCronJobs initializes and starts the cron scheduler for consultation
// reminders.
func StartCronJobs() {
	c := cron.New()
	// Check every 15 minutes for consultations starting within the hour
	_, err := c.AddFunc("*/15 * * * *", sendConsultationReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for consultation reminders")
}

// sendConsultationReminders finds scheduled consultations starting in roughly
// an hour and mails the patient.
func sendConsultationReminders() {
	var consultations []models.Consultation
	now := time.Now()
	startWindow := now.Add(45 * time.Minute)
	endWindow := now.Add(75 * time.Minute)

	err := db.DB.Preload("Patient").Preload("Practitioner").Preload("Practitioner.User").
		Where("status = ? AND scheduled_at BETWEEN ? AND ?", models.ConsultationScheduled, startWindow, endWindow).
		Find(&consultations).Error
	if err != nil {
		log.Printf("Error fetching consultations for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d consultations for reminders\n", len(consultations))

	for _, consultation := range consultations {
		if consultation.ScheduledAt == nil {
			continue
		}
		notify.Dispatch(notify.ConsultationReminder(
			&consultation.Patient,
			&consultation.Practitioner,
			*consultation.ScheduledAt,
		))
		log.Printf("Queued reminder for consultation %d to %s", consultation.ID, consultation.Patient.Email)
	}
}
