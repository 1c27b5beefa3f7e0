// Package usecase はユーザー管理のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rentorsale_backend/internal/feature/auth/domain/entity"
)

// titleCase は登録時の氏名整形に使うケーサーです。単語ごとに先頭を大文字化します。
var titleCase = cases.Title(language.Und)

// UserRepository はユーザーの永続化操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。メールアドレス重複時はErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail はメールアドレスでユーザーを検索します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// DeleteByID は指定されたIDのユーザー行を削除します。
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ListingSummary はユーザーの掲載一覧の1行です。
type ListingSummary struct {
	Title       string
	ListingType string
	Apartment   string
}

// DashboardEntry はユーザーのダッシュボードの集計1行です。
type DashboardEntry struct {
	Count     int64
	Apartment string
}

// ListingDirectory はユーザーに紐づく掲載のサマリー情報を提供します。
type ListingDirectory interface {
	// SummariesForUser はタイトル・種別・アパート名でグループ化した掲載一覧を返します。
	SummariesForUser(ctx context.Context, userID uuid.UUID) ([]ListingSummary, error)
	// DashboardForUser はアパート名ごとの掲載件数を返します。
	DashboardForUser(ctx context.Context, userID uuid.UUID) ([]DashboardEntry, error)
}

// ListingPurger はユーザーの全掲載（画像を含む）を削除します。
type ListingPurger interface {
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users    UserRepository
	listings ListingDirectory
	purger   ListingPurger
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, listings ListingDirectory, purger ListingPurger) *userUsecase {
	return &userUsecase{
		users:    users,
		listings: listings,
		purger:   purger,
	}
}

// Register は新しいユーザーを登録し、採番されたIDを返します。
// 氏名はタイトルケースに、メールアドレスは小文字に正規化して保存します。
// 登録済みのメールアドレスはErrEmailAlreadyExistsで拒否します。
func (u *userUsecase) Register(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	if existing, err := u.users.FindByEmail(ctx, strings.ToLower(email)); err == nil && existing != nil {
		return uuid.Nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     titleCase.String(name),
		Email:    strings.ToLower(email),
		Password: string(hashed),
		IsActive: true,
	}
	// 事前チェックとの競合はCreate側の一意制約違反で検出される
	if err := u.users.Create(ctx, user); err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}

// ListingsForUser はユーザーの掲載一覧（グループ化済み）を返します。
func (u *userUsecase) ListingsForUser(ctx context.Context, userID uuid.UUID) ([]ListingSummary, error) {
	return u.listings.SummariesForUser(ctx, userID)
}

// DashboardForUser はユーザーのダッシュボード集計を返します。
func (u *userUsecase) DashboardForUser(ctx context.Context, userID uuid.UUID) ([]DashboardEntry, error) {
	return u.listings.DashboardForUser(ctx, userID)
}

// DeleteAccount はユーザーのアカウントを削除します。
// 所有ツリーを上から順に辿り、掲載と画像を先に、最後にユーザー行を削除します。
func (u *userUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := u.purger.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete listings for user: %w", err)
	}

	if err := u.users.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
