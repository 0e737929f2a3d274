package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tado3/Star-Space/internal/lib/smtp"
	"github.com/Tado3/Star-Space/internal/models"
)

type writeCloser struct{ bytes.Buffer }

func (w *writeCloser) Close() error { return nil }

type clientMock struct {
	mailFrom string
	rcptTo   []string
	data     writeCloser
	rcptErr  error
	quit     bool
}

func (c *clientMock) Mail(from string) error {
	c.mailFrom = from
	return nil
}

func (c *clientMock) Rcpt(to string) error {
	if c.rcptErr != nil {
		return c.rcptErr
	}
	c.rcptTo = append(c.rcptTo, to)
	return nil
}

func (c *clientMock) Data() (io.WriteCloser, error) { return &c.data, nil }
func (c *clientMock) Quit() error                   { c.quit = true; return nil }
func (c *clientMock) Close() error                  { return nil }

type transportMock struct {
	client     *clientMock
	connectErr error
}

func (t *transportMock) Connect() (smtp.Client, error) {
	if t.connectErr != nil {
		return nil, t.connectErr
	}
	return t.client, nil
}

func (t *transportMock) GetSMTPUser() string { return "notifications@starspace.com" }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func testNotice() models.DueNotice {
	return models.DueNotice{
		Email:                "jean@example.com",
		Name:                 "Jean Bosco",
		KitType:              models.KitStandard,
		LastSubscriptionDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		NextSubscriptionDate: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		DaysLeft:             2,
	}
}

func TestSenderService_HandleMessage(t *testing.T) {
	client := &clientMock{}
	transport := &transportMock{client: client}
	svc := NewSenderService(transport, "notifications@starspace.com", newNoopLogger())

	body, err := json.Marshal(testNotice())
	require.NoError(t, err)

	require.NoError(t, svc.HandleMessage(body))

	assert.Equal(t, "notifications@starspace.com", client.mailFrom)
	assert.Equal(t, []string{"jean@example.com"}, client.rcptTo)
	assert.True(t, client.quit)

	msg := client.data.String()
	assert.Contains(t, msg, "Subject: Star Space - Subscription Due in 2 Days")
	assert.Contains(t, msg, "Dear Jean Bosco,")
	assert.Contains(t, msg, "subscription (Standard)")
	assert.Contains(t, msg, "Last subscription: 2024-05-10")
	assert.Contains(t, msg, "Due date: 2024-06-09")
}

func TestSenderService_HandleMessage_BadPayload(t *testing.T) {
	svc := NewSenderService(&transportMock{client: &clientMock{}}, "notifications@starspace.com", newNoopLogger())

	err := svc.HandleMessage([]byte("{not json"))

	assert.Error(t, err)
}

func TestSenderService_HandleMessage_DeliveryFailure(t *testing.T) {
	client := &clientMock{rcptErr: errors.New("mailbox unavailable")}
	transport := &transportMock{client: client}
	svc := NewSenderService(transport, "notifications@starspace.com", newNoopLogger())

	body, err := json.Marshal(testNotice())
	require.NoError(t, err)

	assert.Error(t, svc.HandleMessage(body))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Star Space - Subscription Due in 0 Days", Subject(0))
	assert.Equal(t, "Star Space - Subscription Due in 3 Days", Subject(3))
}
