// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentorsale_backend/internal/feature/auth/domain/entity"
	"rentorsale_backend/internal/platform/token"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByOtp は指定されたリセットコードを保持するユーザーを取得します。
	// コードはユーザーを跨いで照合されます。
	FindByOtp(ctx context.Context, otp string) (*entity.User, error)

	// UpdateOtp はユーザーのリセットコードと生成時刻を保存します。
	UpdateOtp(ctx context.Context, id uuid.UUID, otp string, generatedAt time.Time) error

	// UpdatePassword はユーザーのパスワードハッシュを置き換えます。
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TokenService はアクセストークンの発行と検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/token）ではなくコンシューマー（usecase）が定義します。
type TokenService interface {
	// Issue は指定されたサブジェクトの署名済みトークンを生成します。
	Issue(subject string) (string, error)
	// Decode はAuthorizationヘッダー値を検証しクレームを返します。
	Decode(authorization string) (token.Decoded, error)
	// Expired はexpクレームから再導出した有効期限を検査します。
	Expired(d token.Decoded) bool
	// MatchesSubject はトークンが指定サブジェクトのものであり、かつ有効期限内であるかを返します。
	MatchesSubject(d token.Decoded, subject string) bool
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenService
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenService) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
	}
}

// Login はユーザーを認証し、成功時にアクセストークンを返します。
// メールアドレスは小文字に正規化してから検索します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, strings.ToLower(email))

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	signed, tokenErr := u.tokens.Issue(user.ID.String())
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return signed, nil
}

// CurrentUser はAuthorizationヘッダーからユーザーを解決します。
// トークンのサブジェクト照合と有効期限の再検査を行い、
// 無効化されたアカウントにはErrInactiveUserを返します。
func (u *authUsecase) CurrentUser(ctx context.Context, authorization string) (*entity.User, error) {
	d, err := u.tokens.Decode(authorization)
	if err != nil {
		return nil, ErrSessionExpired
	}

	id, err := uuid.Parse(d.Subject)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if !u.tokens.MatchesSubject(d, user.ID.String()) {
		return nil, ErrSessionExpired
	}

	return user, nil
}

// VerifyToken はトークンが有効で、そのサブジェクトが登録済みユーザーであることを確認します。
func (u *authUsecase) VerifyToken(ctx context.Context, authorization string) error {
	d, err := u.tokens.Decode(authorization)
	if err != nil {
		return ErrSessionExpired
	}

	if u.tokens.Expired(d) {
		return ErrSessionExpired
	}

	id, err := uuid.Parse(d.Subject)
	if err != nil {
		return ErrSessionExpired
	}

	if _, err := u.users.FindByID(ctx, id); err != nil {
		return ErrSessionExpired
	}

	return nil
}
