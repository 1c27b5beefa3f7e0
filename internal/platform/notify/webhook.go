package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"rentorsale_backend/internal/feature/listings/usecase"
)

// limiter throttles outbound webhook posts.
type limiter interface {
	WaitIfNeeded()
}

// WebhookNotifier は新規掲載の通知を外部のWebhookへ配送します。
// 配送は呼び出し元をブロックしないよう別ゴルーチンで行い、
// 失敗は掲載処理に影響させずログにのみ記録します。
type WebhookNotifier struct {
	url     string
	client  *http.Client
	limiter limiter
	timeout time.Duration
}

// WebhookNotifierがNotifierを実装していることをコンパイル時に検証します。
var _ usecase.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier は指定されたWebhook URLへ通知を配送するNotifierを生成します。
// urlが空の場合、通知は破棄されます。
func NewWebhookNotifier(url string, client *http.Client, l limiter) *WebhookNotifier {
	return &WebhookNotifier{
		url:     url,
		client:  client,
		limiter: l,
		timeout: 10 * time.Second,
	}
}

// ListingCreated は新規掲載の通知を非同期に配送します。
func (n *WebhookNotifier) ListingCreated(title string) {
	if n.url == "" {
		return
	}
	go n.deliver(title)
}

func (n *WebhookNotifier) deliver(title string) {
	if n.limiter != nil {
		n.limiter.WaitIfNeeded()
	}

	payload, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("New listing created: %s", title),
	})
	if err != nil {
		slog.Error("webhook payload encode failed", "error", err)
		return
	}

	// 呼び出し元のリクエストは既に完了しているため、独自のタイムアウトを使います。
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		slog.Error("webhook request build failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		slog.Warn("webhook delivery failed", "error", err)
		return
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		slog.Warn("webhook delivery rejected", "status", res.StatusCode)
	}
}
