package mailer

import "context"

// Message es un correo ya renderizado, listo para enviar.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer envía correos. Los servicios lo usan best-effort: un fallo de envío
// nunca corta la operación de negocio que lo disparó.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
