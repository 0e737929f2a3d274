// Package sender consumes due notices from the notification queue and
// emails the payment reminder to each subscriber.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Tado3/Star-Space/internal/lib/sl"
	"github.com/Tado3/Star-Space/internal/lib/smtp"
	"github.com/Tado3/Star-Space/internal/models"
)

// SenderService turns a due notice into a reminder email and delivers
// it over SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	from      string
	log       *slog.Logger
}

func NewSenderService(transport smtp.TransportInterface, from string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		from:      from,
		log:       log,
	}
}

// HandleMessage is the queue handler: it unmarshals one due notice and
// sends the reminder. Returning an error requeues only this message.
func (s *SenderService) HandleMessage(body []byte) error {
	const op = "sender.HandleMessage"

	var notice models.DueNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("failed to unmarshal due notice", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sendReminder(notice); err != nil {
		s.log.Error("failed to send reminder",
			slog.String("email", notice.Email), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reminder sent", slog.String("email", notice.Email),
		slog.Int("days_left", notice.DaysLeft))
	return nil
}

// Subject returns the reminder subject line for a notice.
func Subject(daysLeft int) string {
	return fmt.Sprintf("Star Space - Subscription Due in %d Days", daysLeft)
}

// Body renders the plain-text reminder for a notice.
func Body(notice models.DueNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\r\n\r\n", notice.Name)
	fmt.Fprintf(&b, "Your Starlink subscription (%s) is due in %d days.\r\n\r\n",
		notice.KitType.Label(), notice.DaysLeft)
	fmt.Fprintf(&b, "Last subscription: %s\r\n", notice.LastSubscriptionDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Due date: %s\r\n\r\n", notice.NextSubscriptionDate.Format("2006-01-02"))
	b.WriteString("Please ensure your payment is processed to avoid service interruption.\r\n\r\n")
	b.WriteString("Thank you for choosing Star Space!\r\n")
	return b.String()
}

func (s *SenderService) sendReminder(notice models.DueNotice) error {
	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("failed to close SMTP client", sl.Err(err))
		}
	}()

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(notice.Email); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, notice.Email, Subject(notice.DaysLeft), Body(notice))
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	return client.Quit()
}
