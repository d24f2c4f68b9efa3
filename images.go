package hdsite

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image, resizes it to at most maxImageWidth wide,
// and re-encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if base == "" {
		base = "image"
	}
	// Short random suffix keeps repeated uploads of the same file distinct.
	filename := fmt.Sprintf("%s-%s.jpg", base, uuid.NewString()[:8])

	return Image{
		Filename:   filename,
		Width:      w,
		Height:     h,
		Size:       int64(buf.Len()),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

func (a *App) uploadsDir() string {
	return filepath.Join(a.staticDir, uploadsSubdir)
}

// handleImageUpload implements POST /api/images (protected): accepts a
// multipart "image" file, normalizes it to a bounded-width JPEG, and stores
// it under the uploads dir for use as a featuredImage URL.
func (a *App) handleImageUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No image file provided"})
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "File too large (max 10MB)"})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid image file"})
	}

	if err := os.MkdirAll(a.uploadsDir(), 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.uploadsDir(), img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	img.URL = "/public/" + uploadsSubdir + "/" + img.Filename
	a.log.Info().Str("filename", img.Filename).Int64("size", img.Size).Msg("image uploaded")
	return c.JSON(http.StatusOK, img)
}

// handleImageList implements GET /api/images (protected).
func (a *App) handleImageList(c echo.Context) error {
	entries, err := os.ReadDir(a.uploadsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, []Image{})
		}
		return err
	}
	images := []Image{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Filename:   e.Name(),
			URL:        "/public/" + uploadsSubdir + "/" + e.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, images)
}

// handleImageDelete implements DELETE /api/images/:filename (protected).
// Idempotent: deleting a missing file still succeeds.
func (a *App) handleImageDelete(c echo.Context) error {
	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Filename required"})
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
