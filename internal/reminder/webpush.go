package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/mana2/mana-cli/internal/config"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/utils"
)

// ErrSubscriptionExpired means the push service answered 410 Gone; the
// browser must subscribe again.
var ErrSubscriptionExpired = errors.New("push subscription expired")

// PushPayload is the JSON body delivered to the service worker.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushSender delivers reminders as Web Push notifications to a single
// browser subscription.
type PushSender struct {
	sub     *webpush.Subscription
	options *webpush.Options
	send    func(ctx context.Context, payload []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)
}

// NewPushSender builds a sender from the push section of cfg.
func NewPushSender(cfg *config.Config) (*PushSender, error) {
	sub, err := LoadSubscription(cfg.Push.Subscription)
	if err != nil {
		return nil, err
	}
	return &PushSender{
		sub: sub,
		options: &webpush.Options{
			HTTPClient:      &http.Client{Timeout: 10 * time.Second},
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
			Urgency:         webpush.UrgencyHigh,
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
		},
		send: webpush.SendNotificationWithContext,
	}, nil
}

// LoadSubscription reads a PushSubscription as serialised by the browser.
func LoadSubscription(path string) (*webpush.Subscription, error) {
	data, err := os.ReadFile(utils.ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read push subscription: %w", err)
	}
	sub := &webpush.Subscription{}
	if err := json.Unmarshal(data, sub); err != nil {
		return nil, fmt.Errorf("failed to parse push subscription: %w", err)
	}
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return nil, errors.New("push subscription needs endpoint, keys.p256dh and keys.auth")
	}
	return sub, nil
}

func (p *PushSender) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(PushPayload{Title: "MANA2", Body: text})
	if err != nil {
		return err
	}

	resp, err := p.send(ctx, payload, p.sub, p.options)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusGone:
		logger.Warn("Push subscription expired", "endpoint", p.sub.Endpoint)
		return ErrSubscriptionExpired
	case resp.StatusCode >= 300:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}

// Multi fans a reminder out to every sender. It fails only when all of
// them fail.
type Multi []Sender

func (m Multi) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(ctx, text); err != nil {
			logger.Debug("Reminder channel failed", "error", err)
			errs = append(errs, err)
		}
	}
	if len(m) > 0 && len(errs) == len(m) {
		return errors.Join(errs...)
	}
	return nil
}
