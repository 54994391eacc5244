package mailer

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
)

// Message - содержимое контактной формы
type Message struct {
	Name  string
	Email string
	Body  string
}

type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer отправляет уведомления контактной формы на один настроенный адрес
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	to       string
}

func NewSMTPMailer(host, port, username, password, to string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		to:       to,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	mail := buildMail(m.username, m.to, msg)

	err := smtp.SendMail(m.host+":"+m.port, auth, m.username, []string{m.to}, mail)
	if err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	return nil
}

func buildMail(from, to string, msg Message) []byte {
	subject := fmt.Sprintf("New Contact Form Submission from %s", msg.Name)
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nName: %s\r\nEmail: %s\r\nMessage: %s\r\n",
		from, to, subject, msg.Name, msg.Email, msg.Body,
	))
}

// DisabledMailer используется, когда SMTP не настроен
type DisabledMailer struct{}

func (DisabledMailer) Send(msg Message) error {
	log.Printf("mailer disabled, dropping contact message from %s <%s>", msg.Name, msg.Email)
	return errors.New("mail delivery is not configured")
}
