package disk

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

const (
	maxImageDimension = 1200
	jpegQuality       = 80

	// progressChunk is how many bytes are read between progress reports
	progressChunk = 32 * 1024
)

type attachmentStore struct {
	baseDir string
}

// NewAttachmentStore creates a local-disk attachment store rooted at baseDir.
// Uploaded images are downscaled and re-encoded as JPEG; other files are
// stored as-is.
func NewAttachmentStore(baseDir string) (domain.AttachmentStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &attachmentStore{baseDir: baseDir}, nil
}

func (s *attachmentStore) Save(ctx context.Context, sessionID, fileName, contentType string, size int64, r io.Reader, report func(fraction float64)) (*domain.Attachment, error) {
	if report == nil {
		report = func(float64) {}
	}

	data, err := readAllReporting(ctx, r, size, report)
	if err != nil {
		return nil, err
	}

	// Sniff the real content type; the client-supplied one is advisory
	detected := http.DetectContentType(data)
	if detected != "application/octet-stream" {
		contentType = detected
	}

	storedName := fileName
	if strings.HasPrefix(contentType, "image/") {
		compressed, compressErr := compressImage(data, maxImageDimension, jpegQuality)
		if compressErr == nil {
			data = compressed
			contentType = "image/jpeg"
			storedName = sanitizeFileName(fileName) + ".jpg"
		}
	} else {
		storedName = sanitizeFileName(fileName) + filepath.Ext(fileName)
	}

	id := uuid.NewString()
	dir := filepath.Join(s.baseDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	path := filepath.Join(dir, id+"_"+storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}

	report(1)

	return &domain.Attachment{
		ID:          id,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		StoredPath:  path,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (s *attachmentStore) Remove(ctx context.Context, att *domain.Attachment) error {
	if att.StoredPath == "" {
		return nil
	}
	if err := os.Remove(att.StoredPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}
	return nil
}

// readAllReporting reads the full stream in chunks, reporting the fraction
// read after each chunk. size <= 0 disables intermediate reports.
func readAllReporting(ctx context.Context, r io.Reader, size int64, report func(fraction float64)) ([]byte, error) {
	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}

	chunk := make([]byte, progressChunk)
	var read int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			if size > 0 {
				fraction := float64(read) / float64(size)
				if fraction > 1 {
					fraction = 1
				}
				report(fraction)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read upload: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// compressImage downscales the image to the max dimension (keeping aspect
// ratio) and re-encodes it as JPEG at the given quality
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeFileName strips the extension and keeps only ASCII alphanumerics,
// underscores and dashes
func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ReplaceAll(base, " ", "_")

	var result strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "file"
	}
	return result.String()
}
