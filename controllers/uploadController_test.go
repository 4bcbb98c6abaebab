package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, fieldName string, fileName string, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	router := gin.New()
	router.POST("/uploads", UploadOrderAsset())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router := gin.New()
	router.POST("/uploads", UploadOrderAsset())

	req := httptest.NewRequest(http.MethodPost, "/uploads", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	recorder := uploadRequest(t, "file", "malware.exe", "application/octet-stream", []byte{0x4d, 0x5a})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUploadRejectsWrongFieldName(t *testing.T) {
	recorder := uploadRequest(t, "attachment", "ring.png", "image/png", []byte("png-bytes"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
