package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"rentorsale_backend/internal/feature/auth/domain/entity"
	"rentorsale_backend/internal/feature/auth/usecase"
)

// mockResetUsecase is a mock implementation of the ResetUsecase interface.
type mockResetUsecase struct {
	CheckResetEligibilityFunc func(ctx context.Context, email string) (*entity.User, error)
	GenerateOtpFunc           func(ctx context.Context, userID uuid.UUID) (string, error)
	SendOtpFunc               func(ctx context.Context, email string) error
	ChangePasswordFunc        func(ctx context.Context, userID uuid.UUID, otp, password string) error
}

// CheckResetEligibility is the mock implementation of the CheckResetEligibility method.
func (m *mockResetUsecase) CheckResetEligibility(ctx context.Context, email string) (*entity.User, error) {
	if m.CheckResetEligibilityFunc != nil {
		return m.CheckResetEligibilityFunc(ctx, email)
	}
	return nil, usecase.ErrUserNotFound // Default: failure
}

// GenerateOtp is the mock implementation of the GenerateOtp method.
func (m *mockResetUsecase) GenerateOtp(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateOtpFunc != nil {
		return m.GenerateOtpFunc(ctx, userID)
	}
	return "A1B2C3", nil // Default: success
}

// SendOtp is the mock implementation of the SendOtp method.
func (m *mockResetUsecase) SendOtp(ctx context.Context, email string) error {
	if m.SendOtpFunc != nil {
		return m.SendOtpFunc(ctx, email)
	}
	return nil
}

// ChangePassword is the mock implementation of the ChangePassword method.
func (m *mockResetUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, otp, password string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, otp, password)
	}
	return nil
}

func TestResetHandler_VerifyEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	generatedAt := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name           string
		email          string
		mockCheckFunc  func(ctx context.Context, email string) (*entity.User, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:  "success: eligible email",
			email: "reset@example.com",
			mockCheckFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: userID, Email: "reset@example.com", OtpGeneratedAt: &generatedAt}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"id":                       userID.String(),
				"email":                    "reset@example.com",
				"otp_generation_timestamp": "2025-01-02T15:04:05Z",
			},
		},
		{
			name:  "success: first request carries no timestamp",
			email: "fresh@example.com",
			mockCheckFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: userID, Email: "fresh@example.com"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"id":                       userID.String(),
				"email":                    "fresh@example.com",
				"otp_generation_timestamp": nil,
			},
		},
		{
			name:  "failure: unknown email",
			email: "missing@example.com",
			mockCheckFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   gin.H{"error": "That email does not exist"},
		},
		{
			name:  "failure: cooldown still active",
			email: "reset@example.com",
			mockCheckFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, usecase.ErrOtpTooEarly
			},
			expectedStatus: http.StatusTooEarly,
			expectedBody:   gin.H{"error": "Please wait for 5 minutes before generating your next otp"},
		},
		{
			name:  "failure: unexpected usecase error",
			email: "reset@example.com",
			mockCheckFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, errors.New("db connection lost")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "Could not verify email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockResetUsecase{CheckResetEligibilityFunc: tt.mockCheckFunc}
			handler := NewResetHandler(mockUC)

			router := gin.New()
			router.GET("/email/:email", handler.VerifyEmail)

			req, _ := http.NewRequest(http.MethodGet, "/email/"+tt.email, nil)

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

func TestResetHandler_GenerateOtp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	tests := []struct {
		name             string
		paramID          string
		mockGenerateFunc func(ctx context.Context, userID uuid.UUID) (string, error)
		expectedStatus   int
		expectedBody     gin.H
	}{
		{
			name:    "success: code generated",
			paramID: userID.String(),
			mockGenerateFunc: func(ctx context.Context, id uuid.UUID) (string, error) {
				return "A1B2C3", nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"message": "Otp generated", "token": "A1B2C3"},
		},
		{
			name:             "failure: malformed user id",
			paramID:          "not-a-uuid",
			mockGenerateFunc: nil, // Usecase is not called
			expectedStatus:   http.StatusBadRequest,
			expectedBody:     gin.H{"error": "Invalid user id"},
		},
		{
			name:    "failure: storage error",
			paramID: userID.String(),
			mockGenerateFunc: func(ctx context.Context, id uuid.UUID) (string, error) {
				return "", errors.New("failed to store otp: db write failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "Could not generate the otp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockResetUsecase{GenerateOtpFunc: tt.mockGenerateFunc}
			handler := NewResetHandler(mockUC)

			router := gin.New()
			router.PUT("/otp/:id", handler.GenerateOtp)

			req, _ := http.NewRequest(http.MethodPut, "/otp/"+tt.paramID, nil)

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

func TestResetHandler_SendOtp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		requestBody     gin.H
		mockSendOtpFunc func(ctx context.Context, email string) error
		expectedStatus  int
		expectedBody    gin.H
	}{
		{
			name:            "success: mail dispatched",
			requestBody:     gin.H{"email": "reset@example.com"},
			mockSendOtpFunc: func(ctx context.Context, email string) error { return nil },
			expectedStatus:  http.StatusCreated,
			expectedBody:    gin.H{"message": "Email sent"},
		},
		{
			name:            "failure: invalid email address",
			requestBody:     gin.H{"email": "invalid-email"},
			mockSendOtpFunc: nil, // Usecase is not called
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    gin.H{"error": "invalid request"},
		},
		{
			name:            "failure: unknown email",
			requestBody:     gin.H{"email": "missing@example.com"},
			mockSendOtpFunc: func(ctx context.Context, email string) error { return usecase.ErrUserNotFound },
			expectedStatus:  http.StatusNotFound,
			expectedBody:    gin.H{"error": "That email does not exist"},
		},
		{
			name:            "failure: no code on record",
			requestBody:     gin.H{"email": "reset@example.com"},
			mockSendOtpFunc: func(ctx context.Context, email string) error { return usecase.ErrOtpExpired },
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    gin.H{"error": "Otp has expired"},
		},
		{
			name:        "failure: mailer error",
			requestBody: gin.H{"email": "reset@example.com"},
			mockSendOtpFunc: func(ctx context.Context, email string) error {
				return errors.New("failed to send otp mail: smtp down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "Could not send the email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockResetUsecase{SendOtpFunc: tt.mockSendOtpFunc}
			handler := NewResetHandler(mockUC)

			router := gin.New()
			router.POST("/email/send_otp", handler.SendOtp)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/email/send_otp", bytes.NewBuffer(body))
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

func TestResetHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()

	tests := []struct {
		name           string
		paramID        string
		requestBody    gin.H
		mockChangeFunc func(ctx context.Context, userID uuid.UUID, otp, password string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: password changed",
			paramID:     userID.String(),
			requestBody: gin.H{"password": "new-password", "otp": "A1B2C3"},
			mockChangeFunc: func(ctx context.Context, id uuid.UUID, otp, password string) error {
				return nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"message": "Password changed successfully"},
		},
		{
			name:           "failure: malformed user id",
			paramID:        "not-a-uuid",
			requestBody:    gin.H{"password": "new-password", "otp": "A1B2C3"},
			mockChangeFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "Invalid user id"},
		},
		{
			name:           "failure: missing otp",
			paramID:        userID.String(),
			requestBody:    gin.H{"password": "new-password"},
			mockChangeFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: unknown user",
			paramID:     userID.String(),
			requestBody: gin.H{"password": "new-password", "otp": "A1B2C3"},
			mockChangeFunc: func(ctx context.Context, id uuid.UUID, otp, password string) error {
				return usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   gin.H{"error": "User not found"},
		},
		{
			name:        "failure: code past its validity window",
			paramID:     userID.String(),
			requestBody: gin.H{"password": "new-password", "otp": "A1B2C3"},
			mockChangeFunc: func(ctx context.Context, id uuid.UUID, otp, password string) error {
				return usecase.ErrOtpExpired
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "Otp has expired"},
		},
		{
			name:        "failure: wrong code",
			paramID:     userID.String(),
			requestBody: gin.H{"password": "new-password", "otp": "FFFFFF"},
			mockChangeFunc: func(ctx context.Context, id uuid.UUID, otp, password string) error {
				return usecase.ErrInvalidOtp
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "Incorrect otp"},
		},
		{
			name:        "failure: unexpected usecase error",
			paramID:     userID.String(),
			requestBody: gin.H{"password": "new-password", "otp": "A1B2C3"},
			mockChangeFunc: func(ctx context.Context, id uuid.UUID, otp, password string) error {
				return errors.New("db connection lost")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "Could not change the password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockResetUsecase{ChangePasswordFunc: tt.mockChangeFunc}
			handler := NewResetHandler(mockUC)

			router := gin.New()
			router.PUT("/user/password/:id", handler.ChangePassword)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPut, "/user/password/"+tt.paramID, bytes.NewBuffer(body))
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
