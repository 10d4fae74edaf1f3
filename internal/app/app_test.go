package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub/internal/config"
	"schoolhub/internal/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = "app-test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.OTP.TTL = 10 * time.Minute
	cfg.Email.DryRun = true

	r, err := NewRouter(cfg, db, rdb, logger.Nop())
	require.NoError(t, err)
	return r, mock
}

func TestRouter_Healthz(t *testing.T) {
	r, _ := newTestServer(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MeRequiresToken(t *testing.T) {
	r, _ := newTestServer(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LoginMissingSchoolNeverQueries(t *testing.T) {
	r, mock := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewBufferString(`{"role":"student","email":"s@x.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"schoolId is required for this role"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_LoginSendsCode(t *testing.T) {
	r, mock := newTestServer(t)
	hash, err := bcryptHash("pw")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM students WHERE lower\(email\) = lower\(\$1\) AND school_id = \$2`).
		WithArgs("s@x.com", "SCH1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "school_id", "picture"}).
			AddRow(30, "Sam", "s@x.com", hash, "SCH1", ""))

	req := httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewBufferString(`{"role":"Student","email":"S@x.com","password":"pw","schoolId":"SCH1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"otpSent":true`)
	assert.Contains(t, w.Body.String(), `"userId":30`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
