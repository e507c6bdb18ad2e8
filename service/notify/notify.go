// Package notify sends registration confirmation emails.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KAsare1/Kodefx-channels/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Program string

const (
	ProgramChannel    Program = "channel_subscription"
	ProgramProfitPlan Program = "profit_plan"
)

// Confirmation carries what the email shows.
type Confirmation struct {
	Name                 string
	Email                string
	Program              Program
	ChannelType          string
	SubscriptionDuration string
	PlanAmount           string
}

// Mailer delivers one HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	if cfg.Host == "" {
		return &SMTPMailer{from: cfg.From}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.Secure
	return &SMTPMailer{dialer: d, from: cfg.From}
}

var ErrMailerNotConfigured = errors.New("smtp host is not configured")

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.dialer == nil {
		return ErrMailerNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Service renders and sends confirmation emails.
type Service struct {
	mailer Mailer
}

func NewService(mailer Mailer) *Service {
	return &Service{mailer: mailer}
}

// SendConfirmation reports whether the email was handed to the transport.
// Failures are logged and never returned.
func (s *Service) SendConfirmation(ctx context.Context, c Confirmation) (ok bool) {
	logger := log.WithFields(log.Fields{
		"operation": "send_confirmation",
		"program":   c.Program,
		"email":     c.Email,
	})

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("confirmation email panicked: %v", r)
			ok = false
		}
	}()

	subject, body, err := Render(c)
	if err != nil {
		logger.WithError(err).Error("failed to render confirmation email")
		return false
	}

	if err := s.mailer.Send(ctx, c.Email, subject, body); err != nil {
		logger.WithError(err).Error("failed to send confirmation email")
		return false
	}
	return true
}

// Sender is implemented by Service.
type Sender interface {
	SendConfirmation(ctx context.Context, c Confirmation) bool
}

// Dispatcher runs each send as a detached task. The caller never waits on
// the outcome; it is only logged.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup

	// OnResult, when set, observes every finished send.
	OnResult func(c Confirmation, ok bool)
}

func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{sender: sender, timeout: timeout}
}

func (d *Dispatcher) Dispatch(c Confirmation) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		ok := d.sender.SendConfirmation(ctx, c)
		if ok {
			log.WithField("email", c.Email).Info("confirmation email sent")
		} else {
			log.WithField("email", c.Email).Warn("confirmation email not delivered")
		}
		if d.OnResult != nil {
			d.OnResult(c, ok)
		}
	}()
}

// Wait blocks until every dispatched send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
