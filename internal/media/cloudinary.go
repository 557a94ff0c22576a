// Package media uploads images to Cloudinary with an unsigned preset.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/config"
	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/observability"
)

// ErrDisabled is returned when no cloud name or preset is configured.
var ErrDisabled = errors.New("media: uploads not configured")

// Image is an uploaded asset.
type Image struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// Uploader stores images and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, file *domain.Upload) (Image, error)
}

// Cloudinary uploads through the unsigned upload endpoint.
type Cloudinary struct {
	cfg        config.MediaConfig
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewCloudinary builds an uploader from cfg.
func NewCloudinary(cfg config.MediaConfig, httpClient *http.Client, logger *zap.Logger, metrics *observability.Metrics) *Cloudinary {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cloudinary{cfg: cfg, httpClient: httpClient, logger: logger, metrics: metrics}
}

// Upload sends file to the configured folder.
func (c *Cloudinary) Upload(ctx context.Context, file *domain.Upload) (img Image, err error) {
	if !c.cfg.Enabled() {
		return Image{}, ErrDisabled
	}
	if file.Empty() {
		return Image{}, errors.New("media: empty file")
	}
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream("CloudinaryUpload", err, time.Since(start)) }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	filename := file.Filename
	if filename == "" {
		filename = "upload"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Image{}, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return Image{}, err
	}
	if err := writer.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
		return Image{}, err
	}
	if c.cfg.Folder != "" {
		if err := writer.WriteField("folder", c.cfg.Folder); err != nil {
			return Image{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return Image{}, err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.CloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Image{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("image upload failed", zap.Error(err))
		return Image{}, fmt.Errorf("media: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)
		c.logger.Warn("image upload rejected", zap.Int("status", resp.StatusCode), zap.String("message", payload.Error.Message))
		return Image{}, fmt.Errorf("media: upload status %d: %s", resp.StatusCode, payload.Error.Message)
	}
	if err := json.NewDecoder(resp.Body).Decode(&img); err != nil {
		return Image{}, fmt.Errorf("media: decode upload response: %w", err)
	}
	if img.URL == "" {
		return Image{}, errors.New("media: upload response has no secure_url")
	}
	return img, nil
}
