package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/domain/terms"
	"loan-origination/internal/infrastructure/storage"
	"loan-origination/internal/testutil/dbtest"
	ucApplication "loan-origination/internal/usecase/application"
	ucCounsel "loan-origination/internal/usecase/counsel"
	ucFile "loan-origination/internal/usecase/file"
	ucTerms "loan-origination/internal/usecase/terms"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type server struct {
	e  *echo.Echo
	db *gorm.DB
}

func newServer(t *testing.T) *server {
	t.Helper()
	gdb := dbtest.Open(t)
	log := zaptest.NewLogger(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	appRepo := mysql.NewApplicationRepository(gdb)
	h := Handlers{
		Health:       NewHandler(nil),
		Applications: NewApplicationHandler(ucApplication.NewUsecase(appRepo, mysql.NewGormUoW(gdb), log)),
		Counsels:     NewCounselHandler(ucCounsel.NewUsecase(mysql.NewCounselRepository(gdb), log)),
		Terms:        NewTermsHandler(ucTerms.NewUsecase(mysql.NewTermsRepository(gdb), log)),
		Files:        NewFileHandler(ucFile.NewUsecase(appRepo, storage.New(afero.NewMemMapFs()), log)),
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	Register(e, h, middleware.IdempotencyMiddleware(rdb, time.Minute, log))
	return &server{e: e, db: gdb}
}

func (s *server) do(t *testing.T, method, path string, body any, hdr ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *stdhttp.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec, decodeEnvelope(t, rec)
}

func TestRouter_ApplicationLifecycle(t *testing.T) {
	s := newServer(t)

	for _, tm := range []map[string]any{
		{"name": "A", "terms_detail_url": "https://abc-storage.acc/a"},
		{"name": "B", "terms_detail_url": "https://abc-storage.acc/b"},
	} {
		rec, _ := s.do(t, stdhttp.MethodPost, "/terms", tm)
		require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env := s.do(t, stdhttp.MethodPost, "/applications", map[string]any{
		"name": "Member Kim", "cell_phone": "010-1111-2222", "email": "mail@abcd.efg", "hope_amount": "50000000",
	})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var created ucApplication.ApplicationDTO
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, uint64(1), created.ApplicationID)

	rec, env = s.do(t, stdhttp.MethodGet, "/applications/1", nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var got ucApplication.ApplicationDTO
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Member Kim", got.Name)
	assert.Equal(t, "010-1111-2222", got.CellPhone)
	assert.True(t, got.HopeAmount.Equal(created.HopeAmount))

	// subset is rejected and leaves nothing behind
	rec, env = s.do(t, stdhttp.MethodPost, "/applications/1/terms", map[string]any{"accept_terms_ids": []int{1}})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "TERMS_NOT_ACCEPTED", env.Error.Code)
	var n int64
	require.NoError(t, s.db.Model(&terms.AcceptTerms{}).Count(&n).Error)
	assert.Zero(t, n)

	rec, env = s.do(t, stdhttp.MethodPost, "/applications/1/terms", map[string]any{"accept_terms_ids": []int{2, 1}})
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "true", string(env.Data))
	require.NoError(t, s.db.Model(&terms.AcceptTerms{}).Where("application_id = ?", 1).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	rec, env = s.do(t, stdhttp.MethodPut, "/applications/1", map[string]any{"email": "new@abcd.efg"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "new@abcd.efg", got.Email)
	assert.Equal(t, "Member Kim", got.Name)
	assert.Equal(t, "terms_accepted", got.Status)

	rec, _ = s.do(t, stdhttp.MethodDelete, "/applications/1", nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	rec, env = s.do(t, stdhttp.MethodGet, "/applications/1", nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "APPLICATION_NOT_FOUND", env.Error.Code)
}

func TestRouter_UnknownIDIsNotFound(t *testing.T) {
	s := newServer(t)
	for _, path := range []string{"/applications/9999", "/counsels/9999"} {
		rec, env := s.do(t, stdhttp.MethodGet, path, nil)
		assert.Equal(t, stdhttp.StatusNotFound, rec.Code, path)
		require.NotNil(t, env.Error, path)
		assert.False(t, env.Success)
	}
}

func TestRouter_CounselLifecycle(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, stdhttp.MethodPost, "/counsels", map[string]any{
		"name": "Member Kim", "cell_phone": "010-1111-2222", "memo": "hello", "zip_code": "12345",
	})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var dto ucCounsel.CounselDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))

	rec, env = s.do(t, stdhttp.MethodPut, "/counsels/1", map[string]any{"memo": "updated"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, "updated", dto.Memo)
	assert.Equal(t, "12345", dto.ZipCode)

	rec, _ = s.do(t, stdhttp.MethodDelete, "/counsels/1", nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	rec, _ = s.do(t, stdhttp.MethodGet, "/counsels/1", nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestRouter_IdempotentCreate(t *testing.T) {
	s := newServer(t)
	body := map[string]any{"name": "Member Kim", "cell_phone": "010-1111-2222", "hope_amount": 1000}
	hdr := []string{
		middleware.HeaderRequestID, "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339),
	}

	rec1, _ := s.do(t, stdhttp.MethodPost, "/applications", body, hdr...)
	rec2, _ := s.do(t, stdhttp.MethodPost, "/applications", body, hdr...)
	require.Equal(t, stdhttp.StatusCreated, rec1.Code)
	require.Equal(t, stdhttp.StatusCreated, rec2.Code)
	assert.Equal(t, rec1.Body.String(), rec2.Body.String())

	var n int64
	require.NoError(t, s.db.Table("applications").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRouter_EnvelopeForFrameworkErrors(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, stdhttp.MethodGet, "/nope", nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)

	rec, env = s.do(t, stdhttp.MethodPatch, "/terms", nil)
	assert.Contains(t, []int{stdhttp.StatusMethodNotAllowed, stdhttp.StatusNotFound}, rec.Code)
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
}

func TestRouter_Health(t *testing.T) {
	s := newServer(t)
	rec, env := s.do(t, stdhttp.MethodGet, "/health", nil)
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.True(t, env.Success)
}
