package folio

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"sync"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
)

// ErrNoShowcase is returned when a requested showcase image does not exist.
var ErrNoShowcase = errors.New("folio: no such showcase image")

// ShowcaseImage is a project image prepared for the page.
type ShowcaseImage struct {
	Name   string
	Width  int
	Height int
	Data   []byte // JPEG
	ETag   string
}

// Showcase serves project images, resized once and kept in memory.
type Showcase struct {
	mu     sync.Mutex
	fsys   fs.FS
	images map[string]*ShowcaseImage
}

// NewShowcase creates a Showcase reading source images from fsys.
func NewShowcase(fsys fs.FS) *Showcase {
	return &Showcase{fsys: fsys, images: make(map[string]*ShowcaseImage)}
}

// Get returns the processed image for name. Only bare file names are
// accepted; anything else reports ErrNoShowcase.
func (s *Showcase) Get(name string) (*ShowcaseImage, error) {
	if !validImageName(name) {
		return nil, ErrNoShowcase
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.images[name]; ok {
		return img, nil
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoShowcase
		}
		return nil, fmt.Errorf("open showcase %s: %w", name, err)
	}
	defer f.Close()

	img, err := processImage(f)
	if err != nil {
		return nil, fmt.Errorf("showcase %s: %w", name, err)
	}
	img.Name = name
	s.images[name] = img
	return img, nil
}

// Forget drops every processed image so they are re-read on next use.
func (s *Showcase) Forget() {
	s.mu.Lock()
	s.images = make(map[string]*ShowcaseImage)
	s.mu.Unlock()
}

func validImageName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r == '/' || r == '\\' {
			return false
		}
	}
	return fs.ValidPath(name)
}

// processImage decodes an image from src, resizes it down to maxImageWidth
// when it is wider, and encodes it as JPEG.
func processImage(src io.Reader) (*ShowcaseImage, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return &ShowcaseImage{
		Width:  w,
		Height: h,
		Data:   buf.Bytes(),
		ETag:   `"` + hex.EncodeToString(sum[:8]) + `"`,
	}, nil
}
