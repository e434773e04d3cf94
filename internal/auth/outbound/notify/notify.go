// Package notify delivers OTP messages to users over email or SMS.
package notify

import (
	"context"
	"strings"

	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

// Notifier routes a message to the channel matching the identifier shape:
// identifiers containing "@" go out as email, everything else as SMS.
type Notifier struct {
	email *Email
	sms   *SMS
	ins   instrument.Instrumentation
}

func NewNotifier(email *Email, sms *SMS, ins instrument.Instrumentation) *Notifier {
	return &Notifier{
		email: email,
		sms:   sms,
		ins:   ins,
	}
}

func (n *Notifier) Send(ctx context.Context, identifier, message string) error {
	ctx, span := n.startSpan(ctx, "Send")
	defer span.End()

	if strings.Contains(identifier, "@") {
		return n.email.Send(ctx, identifier, message)
	}
	return n.sms.Send(ctx, identifier, message)
}

func (n *Notifier) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return n.ins.Tracer("auth.outbound.notify").Start(ctx, name)
}
