package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentorsale_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(email string) (*entity.User, error)
	// DeleteByIDFunc is called when the DeleteByID method is invoked.
	DeleteByIDFunc func(id uuid.UUID) error
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	// Default: no user registered under the address
	return nil, errors.New("record not found")
}

// DeleteByID is the mock implementation of the DeleteByID method.
func (m *mockUserRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(id)
	}
	return nil
}

// mockListingDirectory is a mock implementation of the ListingDirectory interface.
type mockListingDirectory struct {
	SummariesForUserFunc func(userID uuid.UUID) ([]ListingSummary, error)
	DashboardForUserFunc func(userID uuid.UUID) ([]DashboardEntry, error)
}

// SummariesForUser is the mock implementation of the SummariesForUser method.
func (m *mockListingDirectory) SummariesForUser(_ context.Context, userID uuid.UUID) ([]ListingSummary, error) {
	if m.SummariesForUserFunc != nil {
		return m.SummariesForUserFunc(userID)
	}
	return nil, nil
}

// DashboardForUser is the mock implementation of the DashboardForUser method.
func (m *mockListingDirectory) DashboardForUser(_ context.Context, userID uuid.UUID) ([]DashboardEntry, error) {
	if m.DashboardForUserFunc != nil {
		return m.DashboardForUserFunc(userID)
	}
	return nil, nil
}

// mockListingPurger is a mock implementation of the ListingPurger interface.
type mockListingPurger struct {
	DeleteAllForUserFunc func(userID uuid.UUID) error
}

// DeleteAllForUser is the mock implementation of the DeleteAllForUser method.
func (m *mockListingPurger) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(userID)
	}
	return nil
}

func TestUserUsecase_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		assignedID := uuid.New()
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				created = user
				user.ID = assignedID
				return nil
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, &mockListingPurger{})
		got, err := uc.Register(context.Background(), "john doe", "John@Example.COM", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != assignedID {
			t.Errorf("expected id %s, got: %s", assignedID, got)
		}
		if created == nil {
			t.Fatal("expected the user to be stored")
		}
		if created.Name != "John Doe" {
			t.Errorf("expected title-cased name 'John Doe', got: '%s'", created.Name)
		}
		if created.Email != "john@example.com" {
			t.Errorf("expected lowercased email, got: '%s'", created.Email)
		}
		if !created.IsActive {
			t.Error("expected the new account to be active")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")); err != nil {
			t.Errorf("stored hash does not match the password: %v", err)
		}
	})

	t.Run("duplicate email detected by the pre-check", func(t *testing.T) {
		createCalled := false
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				if email != "taken@example.com" {
					t.Errorf("expected lowercased lookup, got: '%s'", email)
				}
				return &entity.User{ID: uuid.New(), Email: email}, nil
			},
			CreateFunc: func(user *entity.User) error {
				createCalled = true
				return nil
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, &mockListingPurger{})
		_, err := uc.Register(context.Background(), "Jane", "Taken@Example.com", "password123")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
		if createCalled {
			t.Error("expected no insert for a duplicate email")
		}
	})

	t.Run("duplicate email surfaced by the unique constraint", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, &mockListingPurger{})
		_, err := uc.Register(context.Background(), "Jane", "taken@example.com", "password123")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				return errors.New("insert failed")
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, &mockListingPurger{})
		_, err := uc.Register(context.Background(), "Jane", "jane@example.com", "password123")

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		if err.Error() != "insert failed" {
			t.Errorf("expected error message 'insert failed', got: '%s'", err.Error())
		}
	})
}

func TestUserUsecase_ListingsForUser(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the grouped rows", func(t *testing.T) {
		rows := []ListingSummary{
			{Title: "2BHK with balcony", ListingType: "rent", Apartment: "Green Meadows"},
			{Title: "Corner flat", ListingType: "sale", Apartment: "Sunrise Towers"},
		}
		mockDir := &mockListingDirectory{
			SummariesForUserFunc: func(id uuid.UUID) ([]ListingSummary, error) {
				if id != userID {
					t.Errorf("unexpected user id: got %s, want %s", id, userID)
				}
				return rows, nil
			},
		}

		uc := NewUserUsecase(&mockUserRepository{}, mockDir, &mockListingPurger{})
		got, err := uc.ListingsForUser(context.Background(), userID)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 rows, got: %d", len(got))
		}
		if got[0].Apartment != "Green Meadows" {
			t.Errorf("expected apartment 'Green Meadows', got: '%s'", got[0].Apartment)
		}
	})

	t.Run("query failure", func(t *testing.T) {
		mockDir := &mockListingDirectory{
			SummariesForUserFunc: func(id uuid.UUID) ([]ListingSummary, error) {
				return nil, errors.New("query failed")
			},
		}

		uc := NewUserUsecase(&mockUserRepository{}, mockDir, &mockListingPurger{})
		if _, err := uc.ListingsForUser(context.Background(), userID); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}

func TestUserUsecase_DashboardForUser(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the aggregated counts", func(t *testing.T) {
		mockDir := &mockListingDirectory{
			DashboardForUserFunc: func(id uuid.UUID) ([]DashboardEntry, error) {
				return []DashboardEntry{{Count: 3, Apartment: "Green Meadows"}}, nil
			},
		}

		uc := NewUserUsecase(&mockUserRepository{}, mockDir, &mockListingPurger{})
		got, err := uc.DashboardForUser(context.Background(), userID)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Count != 3 {
			t.Errorf("expected one row with count 3, got: %+v", got)
		}
	})

	t.Run("query failure", func(t *testing.T) {
		mockDir := &mockListingDirectory{
			DashboardForUserFunc: func(id uuid.UUID) ([]DashboardEntry, error) {
				return nil, errors.New("query failed")
			},
		}

		uc := NewUserUsecase(&mockUserRepository{}, mockDir, &mockListingPurger{})
		if _, err := uc.DashboardForUser(context.Background(), userID); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}

func TestUserUsecase_DeleteAccount(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes listings before the user row", func(t *testing.T) {
		var order []string
		mockPurger := &mockListingPurger{
			DeleteAllForUserFunc: func(id uuid.UUID) error {
				order = append(order, "listings")
				return nil
			},
		}
		mockRepo := &mockUserRepository{
			DeleteByIDFunc: func(id uuid.UUID) error {
				order = append(order, "user")
				return nil
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, mockPurger)
		if err := uc.DeleteAccount(context.Background(), userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 2 || order[0] != "listings" || order[1] != "user" {
			t.Errorf("expected listings to be purged before the user row, got order: %v", order)
		}
	})

	t.Run("purge failure stops the cascade", func(t *testing.T) {
		userDeleted := false
		mockPurger := &mockListingPurger{
			DeleteAllForUserFunc: func(id uuid.UUID) error {
				return errors.New("purge failed")
			},
		}
		mockRepo := &mockUserRepository{
			DeleteByIDFunc: func(id uuid.UUID) error {
				userDeleted = true
				return nil
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, mockPurger)
		err := uc.DeleteAccount(context.Background(), userID)

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		expectedErrMsg := "failed to delete listings for user: purge failed"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
		if userDeleted {
			t.Error("expected the user row to survive a failed purge")
		}
	})

	t.Run("user delete failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			DeleteByIDFunc: func(id uuid.UUID) error {
				return errors.New("delete failed")
			},
		}

		uc := NewUserUsecase(mockRepo, &mockListingDirectory{}, &mockListingPurger{})
		err := uc.DeleteAccount(context.Background(), userID)

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		expectedErrMsg := "failed to delete user: delete failed"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})
}
