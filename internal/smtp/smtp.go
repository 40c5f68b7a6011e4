package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrDeliveryFailed aborts the step-up attempt that triggered the send; the
// client retries through the resend affordance.
var ErrDeliveryFailed = errors.New("failed to deliver email")

type EmailServer struct {
	server    string
	port      int
	user      string
	pass      string
	admin     string
	clientURL string
}

func New(conf config.Config) *EmailServer {
	return &EmailServer{
		server:    conf.Email.Server,
		port:      conf.Email.Port,
		user:      conf.Email.User,
		pass:      conf.Email.Pass,
		admin:     conf.Email.Admin,
		clientURL: conf.Server.ClientURL,
	}
}

func (s *EmailServer) GetMessageBase(subject, toEmail string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	return m
}

func (s *EmailServer) SendStepUpCode(ctx context.Context, toEmail, code string) error {
	const op = "smtp.SendStepUpCode"

	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	m := s.GetMessageBase("Your verification code", toEmail)
	m.SetBody(
		"text/plain",
		fmt.Sprintf("Your two-factor authentication code is: %s\n\nIt expires in 5 minutes.", code),
	)

	return s.Send(m)
}

// SendPasswordResetLink mails the single-use reset link. The raw token is
// embedded in the URL; the server keeps only its hash.
func (s *EmailServer) SendPasswordResetLink(ctx context.Context, toEmail, token string) error {
	const op = "smtp.SendPasswordResetLink"

	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	m := s.GetMessageBase("Password reset request", toEmail)
	m.SetBody(
		"text/plain",
		fmt.Sprintf(
			"You requested a password reset.\n\n"+
				"Open the link below to choose a new password:\n%s/reset-password?token=%s\n\n"+
				"The link expires in 10 minutes. If you didn't request this, ignore this email.",
			s.clientURL, token,
		),
	)

	return s.Send(m)
}

func (s *EmailServer) Send(m *gomail.Message) error {
	d := gomail.NewDialer(s.server, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		zap.L().Error(
			"Failed to send an email",
			zap.Error(err),
		)
		return ErrDeliveryFailed
	}
	return nil
}
