package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"jewelry-backend/internal/domains/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingService verifies whether the pipeline was reached at all.
type recordingService struct {
	createCalled bool
}

func (s *recordingService) Create(ctx context.Context, req *product.CreateProductReq, files []product.UploadedFile) (*product.Product, error) {
	s.createCalled = true
	return &product.Product{ID: uuid.New(), Name: req.Name}, nil
}

func (s *recordingService) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return nil, product.ErrProductNotFound
}

func (s *recordingService) GetAll(ctx context.Context) ([]*product.Product, error) {
	return []*product.Product{}, nil
}

func (s *recordingService) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*product.Product, error) {
	return []*product.Product{}, nil
}

func (s *recordingService) Update(ctx context.Context, id uuid.UUID, req *product.UpdateProductReq, files []product.UploadedFile) (*product.Product, error) {
	return nil, product.ErrProductNotFound
}

func (s *recordingService) Delete(ctx context.Context, id uuid.UUID) error {
	return product.ErrProductNotFound
}

func newTestRouter(svc product.ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, 5<<20, 5)
	r := gin.New()
	r.GET("/api/products", h.List)
	r.GET("/api/products/:id", h.Get)
	r.POST("/api/products", h.Create)
	r.PUT("/api/products/:id", h.Update)
	r.DELETE("/api/products/:id", h.Delete)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, fileSizes []int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, size := range fileSizes {
		fw, err := w.CreateFormFile("images", "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte{0xff}, size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func productFields(categoryID string) map[string]string {
	return map[string]string{
		"name":        "Gold Ring",
		"price":       "99.50",
		"description": "18k gold",
		"category":    categoryID,
	}
}

func TestCreateRejectsSixFilesBeforeServiceRuns(t *testing.T) {
	svc := &recordingService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, productFields(uuid.NewString()), []int{1, 1, 1, 1, 1, 1})
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.createCalled, "the pipeline must not start for an oversized batch")
}

func TestCreateRejectsOversizedFile(t *testing.T) {
	svc := &recordingService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, productFields(uuid.NewString()), []int{(5 << 20) + 1})
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.createCalled)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := &recordingService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"name": "Ring"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.createCalled)

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Error.Code)
}

func TestCreateAcceptsValidRequest(t *testing.T) {
	svc := &recordingService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, productFields(uuid.NewString()), []int{64, 64})
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, svc.createCalled)
}

func TestGetUnknownProductReturns404(t *testing.T) {
	router := newTestRouter(&recordingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInvalidIDReturns400(t *testing.T) {
	router := newTestRouter(&recordingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
