package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey         string
	fromEmail      string
	fromName       string
	authorityEmail string
	authorityName  string
}

func NewEmailService(apiKey, fromEmail, fromName, authorityEmail, authorityName string) EmailService {
	return &emailService{
		apiKey:         apiKey,
		fromEmail:      fromEmail,
		fromName:       fromName,
		authorityEmail: authorityEmail,
		authorityName:  authorityName,
	}
}

func (s *emailService) send(subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(s.authorityName, s.authorityEmail)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRentalNotice(ctx context.Context, carTitle string, renterID uuid.UUID, feeCents, depositCents uint64) error {
	subject := fmt.Sprintf("Car rented: %s", carTitle)
	body := fmt.Sprintf("Renter %s checked out %s.\n\nFee collected: %d cents\nDeposit held in escrow: %d cents",
		renterID, carTitle, feeCents, depositCents)
	return s.send(subject, body)
}

func (s *emailService) SendReturnNotice(ctx context.Context, carTitle string, refundCents uint64) error {
	subject := fmt.Sprintf("Car returned: %s", carTitle)
	body := fmt.Sprintf("%s was returned on time and is listed again.\n\nDeposit refunded to renter: %d cents", carTitle, refundCents)
	return s.send(subject, body)
}

func (s *emailService) SendExpiryNotice(ctx context.Context, carTitle string, forfeitCents uint64) error {
	subject := fmt.Sprintf("Rental expired: %s", carTitle)
	body := fmt.Sprintf("The rental of %s expired without a return. The listing was removed.\n\nDeposit forfeited to revenue: %d cents", carTitle, forfeitCents)
	return s.send(subject, body)
}

// NopEmailService drops every notice. Used when no SendGrid key is
// configured and in tests.
type NopEmailService struct{}

func (NopEmailService) SendRentalNotice(ctx context.Context, carTitle string, renterID uuid.UUID, feeCents, depositCents uint64) error {
	return nil
}

func (NopEmailService) SendReturnNotice(ctx context.Context, carTitle string, refundCents uint64) error {
	return nil
}

func (NopEmailService) SendExpiryNotice(ctx context.Context, carTitle string, forfeitCents uint64) error {
	return nil
}
