package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nailbook/salon-scheduler/internal/config"
	dbpkg "github.com/nailbook/salon-scheduler/internal/db"
)

func authTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	h := NewAuthHandler(db, &config.Config{JWTSecret: "test-secret"})

	r := gin.New()
	r.POST("/register", h.RegisterCustomer)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// .invalid never resolves (reserved TLD), so the domain check fails
// without depending on live DNS data.
func TestRegisterCustomerRejectsBadEmailDomain(t *testing.T) {
	r := authTestRouter(t)

	w := postJSON(t, r, "/register", gin.H{
		"name":     "Sara",
		"email":    "sara@nonexistent.invalid",
		"password": "secret1",
		"phone":    "09121234567",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_email_domain")
}

func TestRegisterCustomerRejectsBadPhone(t *testing.T) {
	r := authTestRouter(t)

	w := postJSON(t, r, "/register", gin.H{
		"name":     "Sara",
		"email":    "sara@nonexistent.invalid",
		"password": "secret1",
		"phone":    "12345",
	})

	// phone is checked before the email domain lookup
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_phone")
}
