package export

import (
	"context"

	"payslip/internal/domain/payslip"
)

type Options struct {
	Share   bool   `json:"share"`
	Email   bool   `json:"email"`
	EmailTo string `json:"emailTo,omitempty"`
}

// Message is a pre-filled mail draft.
type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []string
}

type Sharer interface {
	Available(ctx context.Context) bool
	Share(ctx context.Context, path string) error
}

type Mailer interface {
	Available(ctx context.Context) bool
	Compose(ctx context.Context, msg Message) error
}

// DocumentWriter turns a resolved document into a paginated file at path.
type DocumentWriter interface {
	Write(ctx context.Context, doc payslip.Document, path string) error
}
