// Package testutil поднимает приложение поверх in-memory SQLite для тестов.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recruit_backend/database"
	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/app"
	"recruit_backend/internal/auth"
	"recruit_backend/internal/config"
	"recruit_backend/internal/events"
	"recruit_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestJWTSecret = "test_secret_key_for_recruit_backend_12345"

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Services *services.ServiceContainer
	Events   *events.Recorder
}

// NewTestDB - отдельная in-memory БД на каждый тест
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, uuid.NewString()[:8])

	db, err := database.Open(sqlite.Open(dsn), time.Second)
	require.NoError(t, err, "не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db), "не удалось выполнить миграцию")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewTokenManager - менеджер токенов с тестовым секретом
func NewTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager(TestJWTSecret, time.Hour)
	require.NoError(t, err)
	return tokens
}

// NewServices собирает сервисы без HTTP-слоя
func NewServices(t *testing.T, policy algorithms.TransitionPolicy) (*services.ServiceContainer, *events.Recorder) {
	t.Helper()
	recorder := events.NewRecorder()
	container := services.NewServiceContainer(services.Dependencies{
		Tokens:    NewTokenManager(t),
		Publisher: recorder,
		Policy:    policy,
	})
	return container, recorder
}

// NewTestServer поднимает полный роутер с разрешительной политикой переходов
func NewTestServer(t *testing.T) *TestServer {
	return NewTestServerWithInfra(t, app.Infrastructure{Policy: algorithms.PolicyPermissive})
}

// NewTestServerWithInfra позволяет подменить лимитеры и политику
func NewTestServerWithInfra(t *testing.T, infra app.Infrastructure) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)
	recorder := events.NewRecorder()
	if infra.Tokens == nil {
		infra.Tokens = NewTokenManager(t)
	}
	if infra.Publisher == nil {
		infra.Publisher = recorder
	}

	cfg := config.Default()
	cfg.Server.Env = "test"

	router, container := app.SetupRouter(cfg, db, infra)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       db,
		Services: container,
		Events:   recorder,
	}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reqBody = strings.NewReader(b)
		default:
			jsonBody, err := json.Marshal(body)
			require.NoError(t, err, "ошибка кодирования JSON для запроса")
			reqBody = bytes.NewBuffer(jsonBody)
		}
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "ошибка создания HTTP-запроса")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// DecodeData разбирает поле data успешного ответа
func DecodeData(t *testing.T, body string, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope), "тело ответа: %s", body)
	require.True(t, envelope.Success, "ожидался успешный ответ: %s", body)
	require.NoError(t, json.Unmarshal(envelope.Data, out), "поле data: %s", string(envelope.Data))
}
