package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"indicab/internal/config"
	"indicab/internal/entities"
)

// SenderService fans booking status changes out to the customer over email
// and SMS. Sends are fired asynchronously; a delivery failure never fails
// the booking operation that triggered it.
type SenderService struct {
	cfg *config.Config
}

func NewSenderService(cfg *config.Config) *SenderService {
	return &SenderService{cfg: cfg}
}

func (s *SenderService) SendBookingEmail(booking entities.BookingResponse, status string) {
	emailData := entities.BookingEmailData{
		CustomerName:       booking.CustomerName,
		BookingCode:        booking.Code,
		VehicleName:        booking.VehicleName,
		PickupLocation:     booking.PickupLocation,
		DropLocation:       booking.DropLocation,
		StartTimeFormatted: booking.StartTime.Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   booking.EndTime.Format("02 Jan 2006 15:04 MST"),
		Status:             status,
		CurrentYear:        time.Now().Year(),
	}

	subject := fmt.Sprintf("Your IndiCab booking is %s - Code: %s", status, booking.Code)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour IndiCab booking is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Vehicle: %s\n"+
			"Pickup: %s\n"+
			"Drop: %s\n"+
			"Start: %s\n"+
			"End: %s\n\n"+
			"Thank you for choosing IndiCab.",
		emailData.CustomerName, status, emailData.BookingCode, emailData.VehicleName,
		emailData.PickupLocation, emailData.DropLocation,
		emailData.StartTimeFormatted, emailData.EndTimeFormatted,
	)

	htmlBody := plainText
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	if tmpl, err := template.ParseFiles(tmplPath); err == nil {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err == nil {
			htmlBody = buf.String()
		} else {
			log.Printf("Error executing email template for booking %s: %v", booking.Code, err)
		}
	}

	go func(toEmail, toName string) {
		if err := sendEmailWithSendGrid(s.cfg, toEmail, toName, subject, plainText, htmlBody); err != nil {
			log.Printf("Email delivery failed for booking %s: %v", booking.Code, err)
		}
	}(booking.CustomerEmail, booking.CustomerName)
}

func (s *SenderService) SendBookingSMS(booking entities.BookingResponse, status string) {
	message := fmt.Sprintf("IndiCab: Booking %s is %s!\nPickup: %s at %s.\nMore details in your email.",
		booking.Code, status,
		booking.PickupLocation,
		booking.StartTime.Format("02/01 15:04"),
	)

	go func(to string) {
		if err := sendSMSWithTwilio(s.cfg, to, message); err != nil {
			log.Printf("SMS delivery failed for booking %s: %v", booking.Code, err)
		}
	}(booking.CustomerPhone)
}
