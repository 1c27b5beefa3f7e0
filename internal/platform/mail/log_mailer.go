package mail

import (
	"context"
	"fmt"
	"log/slog"

	"rentorsale_backend/internal/feature/auth/usecase"
)

// LogMailer writes outgoing mail to the application log instead of
// delivering it. It stands in for a real sender in environments where
// no mail credentials are provisioned.
//
// TODO: swap in an SMTP sender once the rentorsale mail account exists.
type LogMailer struct {
	from string
}

// LogMailerがOtpMailerを実装していることをコンパイル時に検証します。
var _ usecase.OtpMailer = (*LogMailer)(nil)

// NewLogMailer returns a LogMailer that reports mail as sent from the
// given address.
func NewLogMailer(from string) *LogMailer {
	return &LogMailer{from: from}
}

// SendOtp composes the password reset mail and records it in the log.
// The reset code itself is only emitted at debug level.
func (m *LogMailer) SendOtp(ctx context.Context, to, otp string) error {
	subject := "OTP to reset your password"
	body := fmt.Sprintf("Otp to reset your rentorsale.apartments password - %s.\n\nThe otp is valid for 10 minutes only.", otp)

	slog.InfoContext(ctx, "otp mail dispatched", "from", m.from, "to", to, "subject", subject)
	slog.DebugContext(ctx, "otp mail body", "to", to, "body", body)
	return nil
}
