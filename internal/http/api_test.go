package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/domain"
	"userhub/internal/repository"
	"userhub/internal/repository/sqlite"
	"userhub/internal/service"
)

// ---- helpers ----

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(t *testing.T, users service.UserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(users, quietLogger()).RegisterRoutes(router)
	return router
}

func newSQLiteRouter(t *testing.T) (*gin.Engine, repository.UserRepository) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return newTestRouter(t, service.NewUserService(repo, quietLogger())), repo
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type failingUserService struct {
	registerErr error
	listErr     error
}

func (s failingUserService) RegisterUser(context.Context, service.RegisterUserInput) (*domain.User, error) {
	return nil, s.registerErr
}

func (s failingUserService) ListUsers(context.Context) ([]domain.User, error) {
	return nil, s.listErr
}

// ---- tests ----

func TestCreateUserThenDuplicate(t *testing.T) {
	router, repo := newSQLiteRouter(t)
	body := map[string]string{"name": "Ana", "email": "ana@x.com", "password": "p1"}

	w := doRequest(router, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "ana@x.com", created.Email)
	assert.Equal(t, "Ana", created.Name)
	assert.NotContains(t, w.Body.String(), "p1")

	w = doRequest(router, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "user already exists", errResp["message"])

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListUsersEmpty(t *testing.T) {
	router, _ := newSQLiteRouter(t)

	w := doRequest(router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListUsersAfterRegistrations(t *testing.T) {
	router, _ := newSQLiteRouter(t)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		w := doRequest(router, http.MethodPost, "/api/users", map[string]string{
			"name": "n", "email": email, "password": "pw",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 3)
	assert.Equal(t, "a@x.com", users[0].Email)

	again := doRequest(router, http.MethodGet, "/api/users", nil)
	assert.Equal(t, w.Body.String(), again.Body.String())
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	router, repo := newSQLiteRouter(t)

	tests := []struct {
		name        string
		body        any
		wantFields  []string
		wantDetails bool
	}{
		{
			name:        "missing fields",
			body:        map[string]string{"name": "Ana"},
			wantFields:  []string{"email", "password"},
			wantDetails: true,
		},
		{
			name:        "empty strings",
			body:        map[string]string{"name": "", "email": "", "password": ""},
			wantFields:  []string{"name", "email", "password"},
			wantDetails: true,
		},
		{
			name: "wrong type",
			body: `{"name": 12, "email": "a@x.com", "password": "p"}`,
		},
		{
			name: "malformed json",
			body: `{"name":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/users", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp validationErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Message)

			if !tt.wantDetails {
				assert.Empty(t, resp.Details)
				return
			}
			fields := make([]string, 0, len(resp.Details))
			for _, d := range resp.Details {
				assert.Equal(t, "required", d.Type)
				fields = append(fields, d.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateUserStoreFailureIsClientError(t *testing.T) {
	storeErr := &service.Error{Kind: service.KindStoreFailure, Err: errors.New("insert user: disk full")}
	router := newTestRouter(t, failingUserService{registerErr: storeErr})

	w := doRequest(router, http.MethodPost, "/api/users", map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "p1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"insert user: disk full"}`, w.Body.String())
}

func TestListUsersFailure(t *testing.T) {
	listErr := &service.Error{Kind: service.KindStoreFailure, Err: errors.New("query users: closed")}
	router := newTestRouter(t, failingUserService{listErr: listErr})

	w := doRequest(router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"query users: closed"}`, w.Body.String())
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForError(&service.Error{Kind: service.KindDuplicateUser}))
	assert.Equal(t, http.StatusBadRequest, statusForError(&service.Error{Kind: service.KindStoreFailure}))
	assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("unexpected")))
}

func TestHealth(t *testing.T) {
	router, _ := newSQLiteRouter(t)

	w := doRequest(router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
