package homework

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pawsitive/mathcat/internal/llm"
)

// ErrInvalidImage is wrapped by every local image validation failure.
var ErrInvalidImage = errors.New("invalid image")

var (
	// ErrImageFormat means the value is not a base64 image data URL.
	ErrImageFormat = fmt.Errorf("%w: not a base64 image data URL", ErrInvalidImage)
	// ErrImageEncoding means the payload contains non-base64 characters.
	ErrImageEncoding = fmt.Errorf("%w: payload is not base64", ErrInvalidImage)
	// ErrImageTooSmall means the payload is too short to hold a picture.
	ErrImageTooSmall = fmt.Errorf("%w: payload too short", ErrInvalidImage)
)

// minImageData is the shortest base64 payload accepted as a picture.
const minImageData = 100

var (
	dataURLPattern = regexp.MustCompile(`(?s)^data:image/([^;]+);base64,(.+)$`)
	base64Pattern  = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
)

var supportedImageTypes = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// ParseDataURL validates a data:image/...;base64 URL and returns it as an
// llm.Image. "jpg" becomes "jpeg" and any other type the vision models
// don't accept (heic, bmp, tiff, ...) is sent as jpeg, since phone
// browsers usually transcode on capture.
func ParseDataURL(raw string) (llm.Image, error) {
	m := dataURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return llm.Image{}, ErrImageFormat
	}

	kind := strings.ToLower(m[1])
	if kind == "jpg" || !supportedImageTypes[kind] {
		kind = "jpeg"
	}

	data := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, m[2])
	if !base64Pattern.MatchString(data) {
		return llm.Image{}, ErrImageEncoding
	}
	if len(data) < minImageData {
		return llm.Image{}, ErrImageTooSmall
	}

	return llm.Image{MediaType: "image/" + kind, Data: data}, nil
}
