package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type IMailService interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetCode(to, code string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // 587 (STARTTLS) or 465 (SMTPS)
	Username string
	Password string
	From     string // envelope from, e.g. "no-reply@fitai.app"
	FromName string // display name
	UseSSL   bool   // true for SMTPS 465, false for STARTTLS 587

	AppName string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.AppName == "" {
		cfg.AppName = "FitAI"
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("codeHTML").Parse(codeHTMLTemplate)),
	}, nil
}

func (s *smtpMailService) SendVerificationCode(to, code string) error {
	return s.sendCode(to, "FitAI - Verification Code", "Use the code below to verify your account:", code)
}

func (s *smtpMailService) SendPasswordResetCode(to, code string) error {
	return s.sendCode(to, "FitAI - Password Reset", "We received a request to reset your password. Use the code below to continue:", code)
}

type emailData struct {
	Title   string
	Intro   string
	Code    string
	AppName string
	Year    int
}

func (s *smtpMailService) sendCode(to, subject, intro, code string) error {
	var htmlBuf bytes.Buffer
	err := s.htmlTpl.Execute(&htmlBuf, emailData{
		Title:   subject,
		Intro:   intro,
		Code:    code,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s\n\nYour code: %s\nThis code expires in 10 minutes.", intro, code)
	return s.send(to, subject, htmlBuf.String(), text)
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	boundary := "fitai-alt-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, textBody)
	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, htmlBody)
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		return s.sendOverTLS(addr, auth, to, msg.String())
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}

func (s *smtpMailService) sendOverTLS(addr string, auth smtp.Auth, to, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const codeHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:24px;">
    <h2 style="color:#0ea5e9;">{{.Title}}</h2>
    <p>{{.Intro}}</p>
    <div style="background-color:#ffffff;padding:15px;text-align:center;border-radius:8px;margin:20px 0;">
      <span style="font-size:24px;font-weight:bold;letter-spacing:5px;color:#18181b;">{{.Code}}</span>
    </div>
    <p>This code expires in 10 minutes.</p>
    <p style="color:#71717a;font-size:12px;margin-top:30px;">If you did not request this code, you can safely ignore this email.</p>
    <p style="color:#a1a1aa;font-size:12px;">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`
