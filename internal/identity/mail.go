package identity

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/lib/jwt"
)

const (
	verifySubject = "Verify your account"
	resetSubject  = "Reset your password"
)

var verifyTemplate = template.Must(template.New("verify").Parse(`
<h2>Hi {{.Name}},</h2>
<p>{{.Intro}}</p>
<p>Click the link below to verify your account:</p>
<a href="{{.Link}}">Verify Account</a>
<p>This link will expire in {{.TTL}}.</p>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`
<h2>Hi {{.Name}},</h2>
<p>We received a request to reset your password.</p>
<a href="{{.Link}}">Choose a new password</a>
<p>This link will expire in {{.TTL}}. If you did not ask for it, ignore this email.</p>
`))

type mailData struct {
	Name  string
	Intro string
	Link  string
	TTL   string
}

func (s *Service) link(path, token string) string {
	return strings.TrimRight(s.cfg.FrontendURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func (s *Service) sendVerification(ctx context.Context, user *models.User, resend bool) error {
	token, err := jwt.NewToken(user.ID, user.Email, jwt.PurposeVerify, s.cfg.Secret, s.cfg.VerifyTTL)
	if err != nil {
		return fmt.Errorf("identity.sendVerification: %w", err)
	}

	subject := verifySubject
	intro := "Thanks for signing up!"
	if resend {
		subject = "Resend: " + verifySubject
		intro = "It looks like you requested a new verification link."
	}

	return s.send(ctx, user.Email, subject, verifyTemplate, mailData{
		Name:  user.Name(),
		Intro: intro,
		Link:  s.link("/verify", token),
		TTL:   s.cfg.VerifyTTL.String(),
	})
}

func (s *Service) sendReset(ctx context.Context, user *models.User) error {
	token, err := jwt.NewStampedToken(user.ID, user.Email, credentialStamp(user), jwt.PurposeReset, s.cfg.Secret, s.cfg.ResetTTL)
	if err != nil {
		return fmt.Errorf("identity.sendReset: %w", err)
	}

	return s.send(ctx, user.Email, resetSubject, resetTemplate, mailData{
		Name: user.Name(),
		Link: s.link("/reset-password", token),
		TTL:  s.cfg.ResetTTL.String(),
	})
}

func (s *Service) send(ctx context.Context, to, subject string, tmpl *template.Template, data mailData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("identity.send: %w", err)
	}

	if err := s.mailer.Send(ctx, to, subject, body.String()); err != nil {
		return fmt.Errorf("identity.send: %w", err)
	}
	return nil
}
