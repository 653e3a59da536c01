package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/metrics"
)

// Notifier renders a template and sends it. Delivery failures are logged
// and counted; callers decide whether they matter.
type Notifier struct {
	mailer    Mailer
	templates *Templates
	metrics   *metrics.Metrics
}

func NewNotifier(m Mailer, t *Templates, mx *metrics.Metrics) *Notifier {
	return &Notifier{mailer: m, templates: t, metrics: mx}
}

// Notify sends template name to the recipients
func (n *Notifier) Notify(ctx context.Context, name string, data any, to ...string) error {
	return n.NotifyWithReplyTo(ctx, name, data, "", to...)
}

func (n *Notifier) NotifyWithReplyTo(ctx context.Context, name string, data any, replyTo string, to ...string) error {
	logger := logging.FromContext(ctx)

	msg, err := n.templates.Render(name, data, to...)
	if err == nil {
		msg.ReplyTo = replyTo
		err = n.mailer.Send(ctx, msg)
	}
	n.metrics.Email(name, err)

	if err != nil {
		logger.Warn("failed to send email", zap.String("template", name), zap.Error(err))
		return err
	}
	logger.Debug("email sent", zap.String("template", name), zap.Int("recipients", len(to)))
	return nil
}
