package mail

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/altai-travel/booking/logger"
)

func dialer() (*gomail.Dialer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")), nil
}

func send(to, subject, htmlBody string) error {
	d, err := dialer()
	if err != nil {
		return err
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendBookingRequestMail notifies a provider that a new booking request is
// waiting for a decision.
func SendBookingRequestMail(to, providerName string, dates []string) {
	if to == "" {
		return
	}
	subject := "New booking request"
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>You have a new booking request for: <b>%s</b>.</p><p>Please accept or reject it in your dashboard.</p>",
		providerName, strings.Join(dates, ", "))
	if err := send(to, subject, body); err != nil {
		logger.ErrorLogger.Errorf("Booking request mail: %v", err)
		return
	}
	logger.InfoLogger.Infof("Booking request mail sent to %s", to)
}

// SendBookingDecisionMail notifies the requester that the provider accepted or
// rejected their booking.
func SendBookingDecisionMail(to, providerName, status string, dates []string) {
	if to == "" {
		return
	}
	subject := fmt.Sprintf("Your booking was %s", status)
	body := fmt.Sprintf(
		"<p>Your booking with <b>%s</b> for %s is now <b>%s</b>.</p>",
		providerName, strings.Join(dates, ", "), status)
	if err := send(to, subject, body); err != nil {
		logger.ErrorLogger.Errorf("Booking decision mail: %v", err)
		return
	}
	logger.InfoLogger.Infof("Booking decision mail sent to %s", to)
}
