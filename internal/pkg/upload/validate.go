package upload

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// SelfieInfo carries what validation learned about an uploaded selfie.
type SelfieInfo struct {
	MimeType    string
	Width       int
	Height      int
	CameraModel *string
	TakenAt     *time.Time
}

// MinSelfieDimension is the smallest usable edge length for model training.
const MinSelfieDimension = 512

// ValidateSelfieBySniff checks the provided filename (extension) and the first
// bytes (head) against a whitelist of photo types. Returns detected mime or an error.
func ValidateSelfieBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("only JPG, JPEG, PNG, WEBP and HEIC photos are supported")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "", errors.New("SVG/XML files are not supported")
	}

	// HEIC may come back as octet-stream depending on Go version; allow by extension
	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", errors.New("the file type is not supported")
}

// InspectSelfie validates the payload and extracts dimensions plus EXIF hints.
// Missing EXIF data is not an error; dimensions below the training minimum are.
func InspectSelfie(filename string, data []byte) (*SelfieInfo, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mime, err := ValidateSelfieBySniff(filename, head)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("the file could not be decoded as an image")
	}
	bounds := img.Bounds()
	info := &SelfieInfo{
		MimeType: mime,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}
	if info.Width < MinSelfieDimension || info.Height < MinSelfieDimension {
		return nil, errors.New("the photo is too small, each side must be at least 512 pixels")
	}

	extractExif(info, filename, data)
	return info, nil
}

func extractExif(info *SelfieInfo, filename string, data []byte) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// Many phone exports strip EXIF, this is not a critical error
		log.Infof("No EXIF data found for selfie %s: %v", filename, err)
		return
	}

	if m, err := x.Get(exif.Model); err == nil {
		s := strings.Trim(m.String(), `"`)
		trimmed := strings.TrimSpace(s)
		info.CameraModel = &trimmed
	}

	if dt, err := x.DateTime(); err == nil {
		info.TakenAt = &dt
	}
}
