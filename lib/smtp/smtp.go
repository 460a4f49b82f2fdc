package smtp

import (
	"bytes"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	IsConfigured() bool
	SendEMail(to, subject, message string) error
}

func Connect(user, password, host, port, sender string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		sender:     sender,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	sender     string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("receiver", to)
	if !i.IsConfigured() {
		logger.Warn("e-mail not sent, smtp client is not configured")
		return nil
	}
	body, err := buildMessage(i.sender, to, subject, message)
	if err != nil {
		return err
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	addr := i.host + ":" + i.port
	if i.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, i.user, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, i.user, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("e-mail sending failed")
		return errors.Wrap(err, "e-mail sending failed")
	}
	logger.Info("e-mail sent")
	return nil
}

func buildMessage(from, to, subject, text string) (*bytes.Buffer, error) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Campus Jobs - "+subject)
	msg.SetBody("text/plain", text)
	buf := new(bytes.Buffer)
	if _, err := msg.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "e-mail build failed")
	}
	return buf, nil
}
