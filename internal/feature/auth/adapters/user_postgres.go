// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"rentorsale_backend/internal/feature/auth/domain/entity"
	"rentorsale_backend/internal/feature/auth/usecase"
	usersusecase "rentorsale_backend/internal/feature/users/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコードです。
const uniqueViolation = "23505"

// userPostgres はユーザーリポジトリインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresが各フィーチャーのリポジトリインターフェースを実装していることをコンパイル時に検証します。
var (
	_ usecase.UserRepository      = (*userPostgres)(nil)
	_ usersusecase.UserRepository = (*userPostgres)(nil)
)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// SQLSTATE 23505: ユニークキーの重複エントリ
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usersusecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByOtp は指定されたリセットコードを保持するユーザーを取得します。
// 該当する行が存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByOtp(ctx context.Context, otp string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("otp = ?", otp).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateOtp はユーザーのリセットコードと生成時刻を保存します。
// 対象の行が存在しなくてもエラーにはなりません。
func (r *userPostgres) UpdateOtp(ctx context.Context, id uuid.UUID, otp string, generatedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp":              otp,
		"otp_generated_at": generatedAt,
	}).Error
}

// UpdatePassword はユーザーのパスワードハッシュを置き換えます。
func (r *userPostgres) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		Update("password", passwordHash).Error
}

// DeleteByID はユーザーの行を削除します。
func (r *userPostgres) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{}).Error
}
