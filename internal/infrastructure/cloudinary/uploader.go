package cloudinary

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Uploader sends images to Cloudinary through its unsigned upload endpoint
// and returns the resulting public URL.
type Uploader struct {
	client       *resty.Client
	cloudName    string
	uploadPreset string
	logger       *zap.Logger
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewUploader builds an uploader for the given Cloudinary account.
func NewUploader(cloudName, uploadPreset string, logger *zap.Logger) *Uploader {
	client := resty.New().
		SetBaseURL("https://api.cloudinary.com/v1_1").
		SetTimeout(60 * time.Second).
		SetHeader("Accept", "application/json")

	return &Uploader{
		client:       client,
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		logger:       logger,
	}
}

// Upload pushes the media behind localRef. A ref naming an existing file is
// sent as multipart content; anything else (remote URL, data URI) is passed
// through for Cloudinary to fetch.
func (u *Uploader) Upload(ctx context.Context, localRef string) (string, error) {
	if u.cloudName == "" || u.uploadPreset == "" {
		return "", fmt.Errorf("Configura el nombre de nube y el preset de Cloudinary")
	}

	request := u.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"upload_preset": u.uploadPreset}).
		SetResult(&uploadResponse{})

	if _, err := os.Stat(localRef); err == nil {
		request.SetFile("file", localRef)
	} else {
		request.SetFormData(map[string]string{"file": localRef})
	}

	response, err := request.Post(fmt.Sprintf("/%s/image/upload", u.cloudName))
	if err != nil {
		u.logger.Warn("fallo la subida a Cloudinary", zap.Error(err))
		return "", fmt.Errorf("Error subiendo la imagen")
	}

	result, ok := response.Result().(*uploadResponse)
	if !response.IsSuccess() || !ok {
		u.logger.Warn("Cloudinary respondió con error", zap.Int("status", response.StatusCode()))
		return "", fmt.Errorf("Error subiendo la imagen (%d)", response.StatusCode())
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("Cloudinary no retornó una URL pública")
	}
	return result.SecureURL, nil
}
