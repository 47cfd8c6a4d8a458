package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/andresmejia3/bmphide/internal/config"
	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testBitmap(size int) []byte {
	b := make([]byte, size)
	b[0], b[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(b[2:], uint32(size))
	binary.LittleEndian.PutUint32(b[10:], 54)
	binary.LittleEndian.PutUint32(b[14:], 40)
	for i := 54; i < size; i++ {
		b[i] = uint8(i * 7)
	}
	return b
}

func newTestRouter() *gin.Engine {
	return New(config.Default().Serve, zerolog.Nop())
}

type formFile struct {
	field string
	data  []byte
}

func postForm(t *testing.T, router http.Handler, path string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.field+".bin")
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	router := newTestRouter()

	rec := postForm(t, router, "/api/v1/stego/encode",
		map[string]string{"message": "over http", "seed": "42"},
		formFile{"image", testBitmap(4096)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "42", rec.Header().Get(HeaderSeed))
	assert.Equal(t, "false", rec.Header().Get(HeaderSeedGenerated))
	encoded := rec.Body.Bytes()

	rec = postForm(t, router, "/api/v1/stego/decode",
		map[string]string{"seed": "42"},
		formFile{"image", encoded})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "over http", rec.Body.String())
}

func TestEncodeGeneratedSeedAndDataFile(t *testing.T) {
	router := newTestRouter()
	data := bytes.Repeat([]byte{0x01, 0x02}, 300)

	rec := postForm(t, router, "/api/v1/stego/encode", nil,
		formFile{"image", testBitmap(8192)}, formFile{"data", data})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get(HeaderSeedGenerated))

	seed, err := strconv.ParseUint(rec.Header().Get(HeaderSeed), 10, 64)
	require.NoError(t, err)

	rec = postForm(t, router, "/api/v1/stego/decode",
		map[string]string{"seed": strconv.FormatUint(seed, 10)},
		formFile{"image", rec.Body.Bytes()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, data, rec.Body.Bytes())
}

func TestEncodeDecodeWithErrorCorrection(t *testing.T) {
	router := newTestRouter()

	rec := postForm(t, router, "/api/v1/stego/encode",
		map[string]string{"message": "parity", "seed_string": "pass", "ecc": "true"},
		formFile{"image", testBitmap(4096)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	encoded := rec.Body.Bytes()

	info, err := stego.Inspect(encoded)
	require.NoError(t, err)
	encoded[info.PayloadOffset] ^= 0x01

	rec = postForm(t, router, "/api/v1/stego/decode",
		map[string]string{"seed_string": "pass"},
		formFile{"image", encoded})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = postForm(t, router, "/api/v1/stego/decode",
		map[string]string{"seed_string": "pass", "ecc": "true"},
		formFile{"image", encoded})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "parity", rec.Body.String())
}

func TestErrorStatuses(t *testing.T) {
	router := newTestRouter()

	signed := postForm(t, router, "/api/v1/stego/encode",
		map[string]string{"message": "x", "seed": "1"},
		formFile{"image", testBitmap(16384)}).Body.Bytes()

	tests := []struct {
		name   string
		path   string
		fields map[string]string
		image  []byte
		want   int
	}{
		{name: "NotBitmap", path: "/api/v1/stego/encode", fields: map[string]string{"message": "x", "seed": "1"}, image: []byte("GIF89a..."), want: http.StatusBadRequest},
		{name: "TooLarge", path: "/api/v1/stego/encode", fields: map[string]string{"message": string(make([]byte, 600)), "seed": "1"}, image: testBitmap(1024), want: http.StatusRequestEntityTooLarge},
		{name: "AlreadySigned", path: "/api/v1/stego/encode", fields: map[string]string{"message": "y", "seed": "1"}, image: signed, want: http.StatusConflict},
		{name: "BadSeed", path: "/api/v1/stego/encode", fields: map[string]string{"seed": "abc"}, image: testBitmap(1024), want: http.StatusBadRequest},
		{name: "DecodeUnsigned", path: "/api/v1/stego/decode", fields: map[string]string{"seed": "1"}, image: testBitmap(1024), want: http.StatusUnprocessableEntity},
		{name: "DecodeWrongSeed", path: "/api/v1/stego/decode", fields: map[string]string{"seed": "2"}, image: signed, want: http.StatusUnprocessableEntity},
		{name: "DecodeWithoutSeed", path: "/api/v1/stego/decode", image: signed, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, router, tt.path, tt.fields, formFile{"image", tt.image})
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestMissingImage(t *testing.T) {
	rec := postForm(t, newTestRouter(), "/api/v1/stego/encode", map[string]string{"message": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInspectEndpoint(t *testing.T) {
	rec := postForm(t, newTestRouter(), "/api/v1/stego/inspect", nil, formFile{"image", testBitmap(1103)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp InspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 500, resp.Capacity)
	assert.Equal(t, 54, resp.HeaderBase)
	assert.False(t, resp.Signed)
}

func TestCORS(t *testing.T) {
	conf := config.Default().Serve
	conf.AllowOrigins = []string{"http://localhost:3000"}
	router := New(conf, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
