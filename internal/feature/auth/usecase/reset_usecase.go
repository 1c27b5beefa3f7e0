package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentorsale_backend/internal/feature/auth/domain/entity"
)

const (
	// otpCooldown は次のリセットコードを要求できるまでの待機時間です。
	otpCooldown = 5 * time.Minute

	// otpValidity はリセットコードが使用可能な期間です。
	otpValidity = 10 * time.Minute

	// otpBytes はリセットコードの元になる乱数のバイト数です。
	// 16進エンコードで6文字のコードになります。
	otpBytes = 3
)

// OtpMailer はリセットコードをユーザーに届けるインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/mail）ではなくコンシューマー（usecase）が定義します。
type OtpMailer interface {
	// SendOtp は指定されたアドレスにリセットコードを送信します。
	SendOtp(ctx context.Context, to, otp string) error
}

// resetUsecase はパスワードリセットのビジネスロジックを実装します。
type resetUsecase struct {
	users  UserRepository
	mailer OtpMailer
	now    func() time.Time
}

// NewResetUsecase はresetUsecaseの新しいインスタンスを生成します。
func NewResetUsecase(users UserRepository, mailer OtpMailer) *resetUsecase {
	return &resetUsecase{
		users:  users,
		mailer: mailer,
		now:    time.Now,
	}
}

// CheckResetEligibility はメールアドレスがリセット可能な状態かを確認します。
// 前回のコード生成から5分以内の再要求はErrOtpTooEarlyで拒否します。
func (u *resetUsecase) CheckResetEligibility(ctx context.Context, email string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.OtpGeneratedAt != nil && u.now().Before(user.OtpGeneratedAt.Add(otpCooldown)) {
		return nil, ErrOtpTooEarly
	}

	return user, nil
}

// GenerateOtp は新しいリセットコードを生成してユーザーの行に保存します。
// コードは3バイトの乱数を16進エンコードし大文字化した6文字です。
func (u *resetUsecase) GenerateOtp(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, otpBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	otp := strings.ToUpper(hex.EncodeToString(buf))

	if err := u.users.UpdateOtp(ctx, userID, otp, u.now()); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return otp, nil
}

// SendOtp は保存済みのリセットコードをメールで送信します。
// メールアドレスの照合は保存時の表記そのままで行います。
// コードが一度も生成されていないユーザーにはErrOtpExpiredを返し、
// 空のコードを送信しません。
func (u *resetUsecase) SendOtp(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	if user.Otp == "" {
		return ErrOtpExpired
	}

	if err := u.mailer.SendOtp(ctx, user.Email, user.Otp); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}

	return nil
}

// ChangePassword はリセットコードを検証し、パスワードを新しいハッシュで置き換えます。
// コードは生成から10分を過ぎるとErrOtpExpiredで拒否されます。
// 使用済みコードは明示的には消去せず、有効期限切れで自然に失効します。
func (u *resetUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, otp, password string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if user.OtpGeneratedAt == nil || u.now().After(user.OtpGeneratedAt.Add(otpValidity)) {
		return ErrOtpExpired
	}

	if otp == "" {
		return ErrInvalidOtp
	}
	if _, err := u.users.FindByOtp(ctx, otp); err != nil {
		return ErrInvalidOtp
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
