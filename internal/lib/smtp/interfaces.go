// Package smtp provides the mail transport used by the notification
// sender, behind interfaces so the sender can be tested without a real
// SMTP server.
package smtp

import "io"

// Client is the subset of the SMTP client the sender drives.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface establishes authenticated SMTP sessions.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
