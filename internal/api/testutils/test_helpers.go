package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brexcellence/intranet-server/internal/api"
	"github.com/brexcellence/intranet-server/internal/docgen"
	"github.com/brexcellence/intranet-server/internal/mailer"
	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/service"
	"github.com/brexcellence/intranet-server/internal/sheets"
	"github.com/brexcellence/intranet-server/internal/utils"
)

const (
	TestJWTSecret    = "test-secret-key"
	TestUserEmail    = "testuser@example.com"
	TestUserPassword = "testpassword"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router       *gin.Engine
	Store        *sheets.MemoryStore
	Service      service.Service
	Mail         *mailer.Recorder
	OutputDir    string
	DirectorDir  string
	TemplatesDir string
	TestUserJWT  string
	DirectorJWT  string
}

// SetupTestContext creates a new test context with an in-memory store,
// a recording mailer and a temp documents directory.
func SetupTestContext(t *testing.T) *TestContext {
	store := sheets.NewMemoryStore()
	seedSheets(t, store)
	createTestUser(t, store)

	mail := mailer.NewRecorder()
	logger := utils.NewLogger()

	tmp := t.TempDir()
	cfg := docgen.Config{
		TemplatesDir: filepath.Join(tmp, "templates"),
		OutputDir:    filepath.Join(tmp, "generated"),
		DirectorDir:  filepath.Join(tmp, "generated", "diretoria"),
	}
	require.NoError(t, os.MkdirAll(cfg.TemplatesDir, 0o755))
	docs := docgen.NewGenerator(cfg, logger)

	svc := service.NewDefaultService(store, mail, docs, logger, TestJWTSecret, "http://localhost:8080")

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(TestJWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	return &TestContext{
		Router:       router,
		Store:        store,
		Service:      svc,
		Mail:         mail,
		OutputDir:    cfg.OutputDir,
		DirectorDir:  cfg.DirectorDir,
		TemplatesDir: cfg.TemplatesDir,
		TestUserJWT:  IssueJWT(t, TestUserEmail, "Test User", "Analista"),
		DirectorJWT:  IssueJWT(t, "director@example.com", "Director", schema.RoleDirector),
	}
}

func seedSheets(t *testing.T, store sheets.Store) {
	for _, def := range schema.DefaultSheets() {
		require.NoError(t, store.CreateSheet(context.Background(), def.Name, def.Headers))
	}
}

// Helper functions
func createTestUser(t *testing.T, store sheets.Store) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.DefaultCost)
	assert.NoError(t, err, "Failed to hash test password")

	err = store.AppendRow(context.Background(), schema.SheetUsers, []interface{}{
		TestUserEmail, "Test User", "Analista", string(hashedPassword),
	})
	assert.NoError(t, err, "Failed to create test user")
}

// IssueJWT generates a signed token for the given identity.
func IssueJWT(t *testing.T, email, name, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"name": name,
		"role": role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(TestJWTSecret))
	assert.NoError(t, err, "Failed to generate JWT token")
	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
