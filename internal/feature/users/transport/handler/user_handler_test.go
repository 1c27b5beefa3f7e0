package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"rentorsale_backend/internal/feature/users/usecase"
	"rentorsale_backend/internal/platform/token"
)

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	RegisterFunc         func(ctx context.Context, name, email, password string) (uuid.UUID, error)
	ListingsForUserFunc  func(ctx context.Context, userID uuid.UUID) ([]usecase.ListingSummary, error)
	DashboardForUserFunc func(ctx context.Context, userID uuid.UUID) ([]usecase.DashboardEntry, error)
	DeleteAccountFunc    func(ctx context.Context, userID uuid.UUID) error
}

// Register is the mock implementation of the Register method.
func (m *mockUserUsecase) Register(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return uuid.New(), nil // Default: success
}

// ListingsForUser is the mock implementation of the ListingsForUser method.
func (m *mockUserUsecase) ListingsForUser(ctx context.Context, userID uuid.UUID) ([]usecase.ListingSummary, error) {
	if m.ListingsForUserFunc != nil {
		return m.ListingsForUserFunc(ctx, userID)
	}
	return nil, nil
}

// DashboardForUser is the mock implementation of the DashboardForUser method.
func (m *mockUserUsecase) DashboardForUser(ctx context.Context, userID uuid.UUID) ([]usecase.DashboardEntry, error) {
	if m.DashboardForUserFunc != nil {
		return m.DashboardForUserFunc(ctx, userID)
	}
	return nil, nil
}

// DeleteAccount is the mock implementation of the DeleteAccount method.
func (m *mockUserUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, userID)
	}
	return nil
}

func TestUserHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	tests := []struct {
		name             string
		requestBody      gin.H
		mockRegisterFunc func(ctx context.Context, name, email, password string) (uuid.UUID, error)
		expectedStatus   int
		expectedBody     gin.H
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"name": "john doe", "email": "john@example.com", "password": "password123"},
			mockRegisterFunc: func(ctx context.Context, name, email, password string) (uuid.UUID, error) {
				return userID, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"id": userID.String()},
		},
		{
			name:             "failure: invalid email address",
			requestBody:      gin.H{"name": "john doe", "email": "invalid-email", "password": "password123"},
			mockRegisterFunc: nil, // Usecase is not called
			expectedStatus:   http.StatusBadRequest,
			expectedBody:     gin.H{"error": "invalid request"},
		},
		{
			name:             "failure: missing name",
			requestBody:      gin.H{"email": "john@example.com", "password": "password123"},
			mockRegisterFunc: nil, // Usecase is not called
			expectedStatus:   http.StatusBadRequest,
			expectedBody:     gin.H{"error": "invalid request"},
		},
		{
			name:        "duplicate email keeps the caller's spelling",
			requestBody: gin.H{"name": "john doe", "email": "Taken@Example.com", "password": "password123"},
			mockRegisterFunc: func(ctx context.Context, name, email, password string) (uuid.UUID, error) {
				return uuid.Nil, usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"message": "Taken@Example.com already exists. Please pick a different email address."},
		},
		{
			name:        "failure: unexpected usecase error",
			requestBody: gin.H{"name": "john doe", "email": "john@example.com", "password": "password123"},
			mockRegisterFunc: func(ctx context.Context, name, email, password string) (uuid.UUID, error) {
				return uuid.Nil, errors.New("insert failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "Could not register user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUserUsecase{RegisterFunc: tt.mockRegisterFunc}
			handler := NewUserHandler(mockUC)

			router := gin.New()
			router.POST("/user", handler.Register)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestUserHandler_ListingsForUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	t.Run("success: grouped rows", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			ListingsForUserFunc: func(ctx context.Context, id uuid.UUID) ([]usecase.ListingSummary, error) {
				return []usecase.ListingSummary{
					{Title: "2BHK with balcony", ListingType: "rent", Apartment: "Green Meadows"},
				}, nil
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/user/listings/:user_id", handler.ListingsForUser)

		req, _ := http.NewRequest(http.MethodGet, "/user/listings/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`[{"title":"2BHK with balcony","listing_type":"rent","apartment":"Green Meadows"}]`,
			w.Body.String())
	})

	t.Run("success: no listings yields an empty array", func(t *testing.T) {
		handler := NewUserHandler(&mockUserUsecase{})

		router := gin.New()
		router.GET("/user/listings/:user_id", handler.ListingsForUser)

		req, _ := http.NewRequest(http.MethodGet, "/user/listings/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), "an empty result should serialize as [], not null")
	})

	t.Run("failure: malformed user id", func(t *testing.T) {
		handler := NewUserHandler(&mockUserUsecase{})

		router := gin.New()
		router.GET("/user/listings/:user_id", handler.ListingsForUser)

		req, _ := http.NewRequest(http.MethodGet, "/user/listings/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid user id"}`, w.Body.String())
	})

	t.Run("failure: query error", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			ListingsForUserFunc: func(ctx context.Context, id uuid.UUID) ([]usecase.ListingSummary, error) {
				return nil, errors.New("query failed")
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/user/listings/:user_id", handler.ListingsForUser)

		req, _ := http.NewRequest(http.MethodGet, "/user/listings/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Could not fetch all the listings for this user"}`, w.Body.String())
	})
}

func TestUserHandler_DashboardForUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	t.Run("success: aggregated counts", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			DashboardForUserFunc: func(ctx context.Context, id uuid.UUID) ([]usecase.DashboardEntry, error) {
				return []usecase.DashboardEntry{
					{Count: 3, Apartment: "Green Meadows"},
					{Count: 1, Apartment: "Sunrise Towers"},
				}, nil
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/user/dashboard/:user_id", handler.DashboardForUser)

		req, _ := http.NewRequest(http.MethodGet, "/user/dashboard/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`[{"count":3,"apartment":"Green Meadows"},{"count":1,"apartment":"Sunrise Towers"}]`,
			w.Body.String())
	})

	t.Run("failure: query error", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			DashboardForUserFunc: func(ctx context.Context, id uuid.UUID) ([]usecase.DashboardEntry, error) {
				return nil, errors.New("query failed")
			},
		}
		handler := NewUserHandler(mockUC)

		router := gin.New()
		router.GET("/user/dashboard/:user_id", handler.DashboardForUser)

		req, _ := http.NewRequest(http.MethodGet, "/user/dashboard/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Could not fetch all the listings for this user"}`, w.Body.String())
	})
}

func TestUserHandler_DeleteAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	// setupRouter mounts the delete route behind a stub that injects the
	// authenticated subject the way the request guard does.
	setupRouter := func(handler *UserHandler, subject string) *gin.Engine {
		router := gin.New()
		router.DELETE("/user/:user_id", func(c *gin.Context) {
			c.Set(token.ContextUserID, subject)
		}, handler.DeleteAccount)
		return router
	}

	t.Run("success: subject deletes own account", func(t *testing.T) {
		var deleted uuid.UUID
		mockUC := &mockUserUsecase{
			DeleteAccountFunc: func(ctx context.Context, id uuid.UUID) error {
				deleted = id
				return nil
			},
		}
		router := setupRouter(NewUserHandler(mockUC), userID.String())

		req, _ := http.NewRequest(http.MethodDelete, "/user/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, userID, deleted)
	})

	t.Run("failure: subject does not match the target", func(t *testing.T) {
		called := false
		mockUC := &mockUserUsecase{
			DeleteAccountFunc: func(ctx context.Context, id uuid.UUID) error {
				called = true
				return nil
			},
		}
		router := setupRouter(NewUserHandler(mockUC), uuid.New().String())

		req, _ := http.NewRequest(http.MethodDelete, "/user/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Session Expired"}`, w.Body.String())
		assert.False(t, called, "the cascade must not run for another user's account")
	})

	t.Run("failure: malformed user id", func(t *testing.T) {
		router := setupRouter(NewUserHandler(&mockUserUsecase{}), userID.String())

		req, _ := http.NewRequest(http.MethodDelete, "/user/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid user id"}`, w.Body.String())
	})

	t.Run("failure: cascade error", func(t *testing.T) {
		mockUC := &mockUserUsecase{
			DeleteAccountFunc: func(ctx context.Context, id uuid.UUID) error {
				return errors.New("purge failed")
			},
		}
		router := setupRouter(NewUserHandler(mockUC), userID.String())

		req, _ := http.NewRequest(http.MethodDelete, "/user/"+userID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Could not delete user"}`, w.Body.String())
	})
}
