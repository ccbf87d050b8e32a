package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
	"gallery-shop/internal/revalidate"
	"gallery-shop/internal/revalidate/api"
)

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, paths ...string) (int64, error) {
	args := m.Called(paths)
	return args.Get(0).(int64), args.Error(1)
}

func newHandler(secret string, invalidator *MockInvalidator) *api.Handler {
	log := logger.New("test")
	svc := revalidate.NewService(secret, invalidator, log)
	return api.NewHandler(svc, log)
}

func TestRevalidate_UnauthorizedWithoutSecret(t *testing.T) {
	invalidator := new(MockInvalidator)
	h := newHandler("s3cret", invalidator)

	req := httptest.NewRequest(http.MethodPost, "/api/revalidate", bytes.NewReader([]byte(`{"_type":"artwork"}`)))
	rec := httptest.NewRecorder()
	h.Revalidate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	invalidator.AssertNotCalled(t, "Invalidate")
}

func TestRevalidate_ReportsInvalidatedPaths(t *testing.T) {
	invalidator := new(MockInvalidator)
	invalidator.On("Invalidate", []string{"/", "/artwork", "/art/misty-morning"}).Return(int64(3), nil)
	h := newHandler("s3cret", invalidator)

	body := []byte(`{"_type":"artwork","_id":"doc-1","slug":{"current":"misty-morning"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/revalidate", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	h.Revalidate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.RevalidateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Revalidation triggered successfully", resp.Message)
	assert.Equal(t, "artwork", resp.DocumentType)
	assert.Equal(t, []string{"/", "/artwork", "/art/misty-morning"}, resp.Paths)
}

func TestRevalidate_MalformedBodyIs500(t *testing.T) {
	invalidator := new(MockInvalidator)
	h := newHandler("", invalidator)

	req := httptest.NewRequest(http.MethodPost, "/api/revalidate", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	h.Revalidate(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Webhook processing failed", resp["error"])
}
