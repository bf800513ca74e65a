package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eunoia-app/eunoia-api/internal/service"
)

func newUploadApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.NewUploadService(service.DiskStorage{Dir: t.TempDir()}, 10, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/integrations/core", authenticateAs(1, "teen@example.com"))
	NewUploadHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func uploadRequest(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/integrations/core/uploadFile", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadFileEndpoint(t *testing.T) {
	app := newUploadApp(t)

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 32)...)
	resp, err := app.Test(uploadRequest(t, "file", "avatar.png", png))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, ok := decodeEnvelope(t, resp).Data.(map[string]any)
	require.True(t, ok)
	url, _ := data["file_url"].(string)
	require.True(t, strings.HasPrefix(url, "/api/uploads/"))
}

func TestUploadFileEndpointWrongType(t *testing.T) {
	app := newUploadApp(t)

	resp, err := app.Test(uploadRequest(t, "file", "notes.txt", []byte("plain text")))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestUploadFileEndpointMissingFile(t *testing.T) {
	app := newUploadApp(t)

	resp, err := app.Test(uploadRequest(t, "wrong_field", "avatar.png", []byte("x")))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
