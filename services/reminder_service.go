// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"clinicpro-backend/models"
	"clinicpro-backend/store"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ReminderService texts customers about their appointments for the day. It
// works entirely off the snapshot store; a failed send is logged and skipped.
type ReminderService struct {
	store  *store.Store
	client *twilio.RestClient
	from   string
}

func NewReminderService(s *store.Store) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		store: s,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Appointment reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	if s.from == "" {
		log.Println("TWILIO_FROM_NUMBER not set, skipping appointment reminders")
		return
	}

	log.Println("Starting daily appointment reminder processing...")

	snap := s.store.Snapshot()
	today := time.Now().Format("2006-01-02")

	customers := make(map[string]models.Customer, len(snap.Customers))
	for _, c := range snap.Customers {
		customers[c.ID.String()] = c
	}
	services := make(map[string]models.Service, len(snap.Services))
	for _, sv := range snap.Services {
		services[sv.ID.String()] = sv
	}

	sent := 0
	for _, a := range snap.Appointments {
		if a.Date != today || a.Status != models.AppointmentScheduled {
			continue
		}
		customer, ok := customers[a.CustomerID.String()]
		if !ok || customer.Phone == "" {
			continue
		}

		serviceName := "your appointment"
		if sv, ok := services[a.ServiceID.String()]; ok {
			serviceName = sv.Name
		}

		body := fmt.Sprintf("Hi %s, this is a reminder of %s today at %s. See you soon!",
			customer.Name, serviceName, a.Time)

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(customer.Phone)
		params.SetFrom(s.from)
		params.SetBody(body)

		if _, err := s.client.Api.CreateMessage(params); err != nil {
			log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
			continue
		}
		sent++
	}

	log.Printf("Daily appointment reminder processing completed, %d sent", sent)
}
