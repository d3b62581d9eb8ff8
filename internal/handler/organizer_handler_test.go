package handler_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"protest-tracker/internal/auth"
	"protest-tracker/internal/handler"
	"protest-tracker/internal/model"
	repoMocks "protest-tracker/internal/repository/mocks"
	"protest-tracker/internal/service"
	"protest-tracker/internal/service/mocks"
	apperrors "protest-tracker/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func sampleOrganizer() *model.PublicOrganizer {
	return &model.PublicOrganizer{ID: 1, Name: "Ana", Email: "ana@example.com", Followers: 2, CreatedAt: time.Now()}
}

func TestOrganizerHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 0)

		req := model.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"}
		svc.On("Register", mock.Anything, req).
			Return(&model.AuthResponse{Token: "tok", OrganizerID: 1, Organizer: sampleOrganizer()}, nil)

		w := doRequest(t, router, http.MethodPost, "/api/organizers/register", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "tok", body["token"])
		organizer := body["organizer"].(map[string]interface{})
		assert.Equal(t, "ana@example.com", organizer["email"])
		assert.NotContains(t, organizer, "password_hash")
		svc.AssertExpectations(t)
	})

	t.Run("alias path", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 0)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(&model.AuthResponse{Token: "tok", OrganizerID: 1, Organizer: sampleOrganizer()}, nil)

		w := doRequest(t, router, http.MethodPost, "/api/register",
			model.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 0)

		w := doRequest(t, router, http.MethodPost, "/api/organizers/register", `{"name":"Ana","email":"ana@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 0)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailTaken)

		w := doRequest(t, router, http.MethodPost, "/api/organizers/register",
			model.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestOrganizerHandler_RegisterLongPassword(t *testing.T) {
	repo := repoMocks.NewOrganizerRepositoryMock()
	svc := service.NewOrganizerService(repo, auth.NewBcryptHasher(bcrypt.MinCost), auth.NewJWTIssuer("secret", time.Hour))
	router := setupRouter(handler.NewOrganizerHandler(svc), 0)

	w := doRequest(t, router, http.MethodPost, "/api/organizers/register",
		model.RegisterRequest{Name: "A", Email: "a@example.com", Password: strings.Repeat("p", 73)})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing or invalid fields", decode(t, w)["error"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrganizerHandler_Login(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"success", nil, http.StatusOK, ""},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"database failure", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewOrganizerServiceMock()
			router := setupRouter(handler.NewOrganizerHandler(svc), 0)
			req := model.LoginRequest{Email: "ana@example.com", Password: "pw"}
			if tt.err != nil {
				svc.On("Login", mock.Anything, req).Return(nil, tt.err)
			} else {
				svc.On("Login", mock.Anything, req).
					Return(&model.AuthResponse{Token: "tok", OrganizerID: 1, Organizer: sampleOrganizer()}, nil)
			}

			w := doRequest(t, router, http.MethodPost, "/api/login", req)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			if tt.err == nil {
				assert.Equal(t, "tok", body["token"])
				assert.EqualValues(t, 1, body["organizerId"])
			} else {
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}
}

func TestOrganizerHandler_GetByID(t *testing.T) {
	svc := mocks.NewOrganizerServiceMock()
	router := setupRouter(handler.NewOrganizerHandler(svc), 0)
	svc.On("GetByID", mock.Anything, int64(1)).Return(sampleOrganizer(), nil)
	svc.On("GetByID", mock.Anything, int64(2)).Return(nil, apperrors.ErrOrganizerNotFound)

	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/api/organizers/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/api/organizers/2", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, http.MethodGet, "/api/organizers/abc", nil).Code)
}

func TestOrganizerHandler_Follow(t *testing.T) {
	svc := mocks.NewOrganizerServiceMock()
	router := setupRouter(handler.NewOrganizerHandler(svc), 0)
	svc.On("SetFollow", mock.Anything, int64(1), true).Return(3, nil)
	svc.On("SetFollow", mock.Anything, int64(9), false).Return(0, apperrors.ErrOrganizerNotFound)

	w := doRequest(t, router, http.MethodPost, "/api/organizers/1/follow", `{"following":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"followers":3}`, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/organizers/9/follow", `{"following":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/organizers/1/follow", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganizerHandler_Analytics(t *testing.T) {
	t.Run("own analytics", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 1)
		svc.On("Analytics", mock.Anything, int64(1), int64(1)).
			Return(&model.Analytics{Followers: 2, TotalLikes: 7, ProtestCount: 3}, nil)

		w := doRequest(t, router, http.MethodGet, "/api/organizers/1/analytics", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"followers":2,"total_likes":7,"social_clicks":0,"protest_count":3}`, w.Body.String())
	})

	t.Run("someone else", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 1)
		svc.On("Analytics", mock.Anything, int64(1), int64(2)).Return(nil, apperrors.ErrForbidden)

		w := doRequest(t, router, http.MethodGet, "/api/organizers/2/analytics", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no caller", func(t *testing.T) {
		svc := mocks.NewOrganizerServiceMock()
		router := setupRouter(handler.NewOrganizerHandler(svc), 0)

		w := doRequest(t, router, http.MethodGet, "/api/organizers/1/analytics", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Analytics", mock.Anything, mock.Anything, mock.Anything)
	})
}
