package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"perfectspot-api/config"
	"perfectspot-api/database"
	"perfectspot-api/models"
	"perfectspot-api/routes"
	"perfectspot-api/services"
)

const testJWTSecret = "test-secret"

var testDBCounter int64

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTSecret: testJWTSecret}
	router := gin.New()
	routes.SetupRoutes(router, db, cfg, services.NewEmailService(cfg))

	return &testEnv{db: db, router: router}
}

func (e *testEnv) createUser(t *testing.T, username string, userType models.UserType) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		UserType: userType,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createStaffUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := e.createUser(t, username, models.UserTypeIndividual)
	require.NoError(t, e.db.Model(user).Update("is_staff", true).Error)
	user.IsStaff = true
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// request performs an HTTP call against the test router. An empty token means
// an anonymous request.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if len(rec.Body.Bytes()) > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (e *testEnv) createEvent(t *testing.T, creator *models.User, title string) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:          uuid.New().String(),
		Title:       title,
		Description: "A test event",
		Location:    "Warsaw",
		Date:        time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second),
		CreatorID:   creator.ID,
	}
	require.NoError(t, e.db.Create(event).Error)
	return event
}
