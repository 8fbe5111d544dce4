package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/services"
	"github.com/lrmsph/lrms-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, router *gin.Engine, method, path, field, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// ---- service fakes ----

type fakeUserService struct {
	registerUser *types.User
	registerErr  error
	loginUser    *types.User
	loginToken   string
	loginErr     error
	users        []*types.User
	deleteErr    error
	updateErr    error
	changeErr    error
	resetErr     error

	resetCalls []string
}

func (f *fakeUserService) Register(_ context.Context, _ services.RegisterInput) (*types.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeUserService) Login(_ context.Context, _, _ string) (*types.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginUser, f.loginToken, nil
}

func (f *fakeUserService) GetAllUsers(_ context.Context) ([]*types.User, error) {
	return f.users, nil
}

func (f *fakeUserService) DeleteUser(_ context.Context, _ uint) error {
	return f.deleteErr
}

func (f *fakeUserService) UpdateUser(_ context.Context, _ uint, _ services.UserUpdate) (*types.User, error) {
	return f.registerUser, f.updateErr
}

func (f *fakeUserService) UpdateProfile(_ context.Context, _ uint, _ services.ProfileUpdate) (*types.User, error) {
	return f.registerUser, f.updateErr
}

func (f *fakeUserService) ChangePassword(_ context.Context, _ uint, _ string) error {
	return f.changeErr
}

func (f *fakeUserService) ResetPassword(_ context.Context, email, _ string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resetCalls = append(f.resetCalls, email)
	return nil
}

type fakeIngestService struct {
	result    services.Result
	lastPath  string
	callCount int
}

func (f *fakeIngestService) ParseExcelFile(_ context.Context, filePath string) services.Result {
	f.lastPath = filePath
	f.callCount++
	return f.result
}

type fakeMaterialService struct {
	views     []*services.MaterialView
	fetchErr  error
	updated   *services.MaterialView
	updateErr error
}

func (f *fakeMaterialService) FetchAllMaterials(_ context.Context) ([]*services.MaterialView, error) {
	return f.views, f.fetchErr
}

func (f *fakeMaterialService) UpdateMaterialWithFile(_ context.Context, _ uint, _, _ string) (*services.MaterialView, error) {
	return f.updated, f.updateErr
}

var _ services.UserService = (*fakeUserService)(nil)
var _ services.IngestService = (*fakeIngestService)(nil)
var _ services.MaterialService = (*fakeMaterialService)(nil)

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: want=%d got=%d (body %q)", want, rec.Code, rec.Body.String())
	}
}

func expectFailure(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) Envelope {
	t.Helper()
	expectStatus(t, rec, status)
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatalf("envelope must report failure (body %q)", rec.Body.String())
	}
	if env.Message != message {
		t.Fatalf("message: want=%q got=%q", message, env.Message)
	}
	return env
}
