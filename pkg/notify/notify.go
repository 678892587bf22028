// Package notify posts terminal job outcomes to a configured webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// JobEvent describes the terminal outcome of a solve job.
type JobEvent struct {
	ProblemID string          `json:"problemId"`
	Status    string          `json:"status"`
	Solution  json.RawMessage `json:"solution,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type Notifier struct {
	url        string
	httpClient *http.Client
	maxTries   uint
	log        *zap.SugaredLogger
}

func NewNotifier(url string, maxTries uint) *Notifier {
	return &Notifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxTries:   maxTries,
		log:        zap.S().Named("notifier"),
	}
}

// Notify delivers the event, retrying transient failures with exponential
// backoff. 4xx responses are treated as permanent.
func (n *Notifier) Notify(ctx context.Context, event JobEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding job event: %w", err)
	}

	post := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.httpClient.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode < 300:
			return struct{}{}, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return struct{}{}, backoff.Permanent(fmt.Errorf("webhook rejected event: %s", resp.Status))
		default:
			return struct{}{}, fmt.Errorf("webhook returned %s", resp.Status)
		}
	}

	_, err = backoff.Retry(ctx, post,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(n.maxTries),
	)
	if err != nil {
		n.log.Errorw("failed to deliver job event", "problemId", event.ProblemID, "error", err)
		return err
	}

	n.log.Debugw("job event delivered", "problemId", event.ProblemID, "status", event.Status)
	return nil
}
