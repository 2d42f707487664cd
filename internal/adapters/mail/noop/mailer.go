// Package noop loguea los correos en vez de mandarlos. Es el mailer de dev
// cuando no hay SMTP configurado.
package noop

import (
	"context"

	"titulares-admin/internal/platform/logger"
	"titulares-admin/internal/ports/mailer"
)

type Mailer struct {
	log logger.Logger
}

func NewMailer(log logger.Logger) *Mailer {
	return &Mailer{log: log}
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	m.log.Info("mail (noop, no enviado)", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

var _ mailer.Mailer = (*Mailer)(nil)
