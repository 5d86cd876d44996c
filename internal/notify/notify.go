// Package notify delivers claim decisions to stakeholders. Delivery is
// best-effort and advisory: failures are reported per channel and logged,
// never propagated back into claim processing.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
)

// Notification is the outbound payload. Recipient is the claimant's (real)
// email address; the Body may only contain masked personal data.
type Notification struct {
	Subject   string
	Summary   string
	Body      string
	Recipient string
}

// ChannelResult is the outcome of one delivery attempt.
type ChannelResult struct {
	Channel string
	OK      bool
	Err     error
}

// Channel is one delivery mechanism. An unconfigured channel reports an
// error from Send rather than failing construction.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Notifier fans a notification out to every channel.
type Notifier interface {
	Send(ctx context.Context, n Notification) []ChannelResult
}

// Multi attempts each channel independently; one channel's failure never
// affects the others.
type Multi struct {
	channels []Channel
	log      *logrus.Logger
}

func NewMulti(log *logrus.Logger, channels ...Channel) *Multi {
	return &Multi{channels: channels, log: log}
}

// FromConfig wires the standard channel set: chat-ops webhook, team
// messaging webhook and email.
func FromConfig(cfg *config.Config, log *logrus.Logger) *Multi {
	return NewMulti(log,
		NewSlackChannel(cfg.SlackWebhookURL),
		NewTeamsChannel(cfg.TeamsWebhookURL),
		NewEmailChannel(cfg),
	)
}

func (m *Multi) Send(ctx context.Context, n Notification) []ChannelResult {
	results := make([]ChannelResult, 0, len(m.channels))
	for _, ch := range m.channels {
		err := ch.Send(ctx, n)
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"channel": ch.Name(),
				"subject": n.Subject,
			}).WithError(err).Warn("notification delivery failed")
		}
		results = append(results, ChannelResult{Channel: ch.Name(), OK: err == nil, Err: err})
	}
	return results
}
