package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderSeed          = "X-Stego-Seed"
	HeaderSeedGenerated = "X-Stego-Seed-Generated"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InspectResponse mirrors stego.Info.
type InspectResponse struct {
	Width         int  `json:"width"`
	Height        int  `json:"height"`
	Size          int  `json:"size"`
	DIBHeaderSize int  `json:"dib_header_size"`
	HeaderBase    int  `json:"header_base"`
	Capacity      int  `json:"capacity"`
	Signed        bool `json:"signed"`
	PayloadLength int  `json:"payload_length,omitempty"`
}

type StegoHandler struct {
	maxUpload int64
	logger    zerolog.Logger
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
	})
}

// Encode hides the "message" field or the "data" file in the "image" file.
// Optional fields: "seed" (number), "seed_string", "force", "ecc".
func (h *StegoHandler) Encode(c *gin.Context) {
	carrier, ok := h.readFile(c, "image", true)
	if !ok {
		return
	}

	payload, ok := h.readFile(c, "data", false)
	if !ok {
		return
	}
	if payload == nil {
		payload = []byte(c.PostForm("message"))
	}

	if c.PostForm("ecc") == "true" {
		var err error
		if payload, err = stego.AddErrorCorrection(payload); err != nil {
			h.fail(c, http.StatusInternalServerError, err)
			return
		}
	}

	engine := stego.NewEngine(stego.WithLogger(h.logger))
	generated, err := applySeed(c, engine)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	encoded, err := engine.Encode(carrier, payload, c.PostForm("force") == "true")
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.Header(HeaderSeed, strconv.FormatUint(engine.Seed(), 10))
	c.Header(HeaderSeedGenerated, strconv.FormatBool(generated))
	c.Header("Content-Disposition", `attachment; filename="stego.bmp"`)
	c.Data(http.StatusOK, "image/bmp", encoded)
}

// Decode extracts the payload from the "image" file. A seed is required.
func (h *StegoHandler) Decode(c *gin.Context) {
	carrier, ok := h.readFile(c, "image", true)
	if !ok {
		return
	}

	engine := stego.NewEngine(stego.WithLogger(h.logger))
	generated, err := applySeed(c, engine)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if generated {
		h.fail(c, http.StatusBadRequest, errors.New("a seed or seed_string is required to decode"))
		return
	}

	var payload []byte
	if c.PostForm("ecc") == "true" {
		var repaired int
		payload, repaired, err = engine.DecodeErrorCorrected(carrier)
		if err == nil && repaired > 0 {
			h.logger.Warn().Int("shards", repaired).Msg("Recovered payload from parity shards")
		}
	} else {
		payload, err = engine.Decode(carrier)
	}
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", payload)
}

// Inspect reports the metadata of the "image" file without a seed.
func (h *StegoHandler) Inspect(c *gin.Context) {
	carrier, ok := h.readFile(c, "image", true)
	if !ok {
		return
	}

	info, err := stego.Inspect(carrier)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, InspectResponse{
		Width:         info.Width,
		Height:        info.Height,
		Size:          info.Size,
		DIBHeaderSize: info.DIBHeaderSize,
		HeaderBase:    info.HeaderBase,
		Capacity:      info.Capacity,
		Signed:        info.Signed,
		PayloadLength: info.PayloadLength,
	})
}

// readFile returns the content of a multipart file field. A missing optional
// field yields (nil, true).
func (h *StegoHandler) readFile(c *gin.Context, field string, required bool) ([]byte, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		h.fail(c, http.StatusBadRequest, fmt.Errorf("%s file is required: %w", field, err))
		return nil, false
	}
	if header.Size > h.maxUpload {
		h.fail(c, http.StatusRequestEntityTooLarge, fmt.Errorf("%s exceeds %d bytes", field, h.maxUpload))
		return nil, false
	}

	data, err := readMultipart(header)
	if err != nil {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("failed to read %s: %w", field, err))
		return nil, false
	}
	return data, true
}

func readMultipart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *StegoHandler) fail(c *gin.Context, status int, err error) {
	h.logger.Debug().Err(err).Int("status", status).Msg("Request failed")
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: err.Error()})
}

// applySeed sets the engine seed from the "seed" or "seed_string" fields and
// reports whether the engine kept its generated seed instead.
func applySeed(c *gin.Context, engine *stego.Engine) (bool, error) {
	if v := c.PostForm("seed"); v != "" {
		seed, err := stego.ParseSeed(v)
		if err != nil {
			return false, err
		}
		engine.SetSeed(seed)
		return false, nil
	}
	if s := c.PostForm("seed_string"); s != "" {
		engine.SetSeedString(s)
		return false, nil
	}
	return true, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stego.ErrInvalidContainer):
		return http.StatusBadRequest
	case errors.Is(err, stego.ErrSignatureAlreadyPresent):
		return http.StatusConflict
	case errors.Is(err, stego.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, stego.ErrInvalidSignature),
		errors.Is(err, stego.ErrOffsetMismatch),
		errors.Is(err, stego.ErrIntegrityMismatch),
		errors.Is(err, stego.ErrUnrecoverable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
