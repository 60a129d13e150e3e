package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// thumbWidth is the bounding width for generated thumbnails.
const thumbWidth = 480

// UploadResult holds the URLs produced by one image upload.
type UploadResult struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url,omitempty"`
}

// UploadProductImage stores the original image under
// products/{productId}/{filename} and a webp thumbnail alongside it.
// Thumbnail failures are non-fatal: the original URL is still returned.
func UploadProductImage(ctx context.Context, provider StorageProvider, productID, filename string, data []byte) (*UploadResult, error) {
	key := ProductKey(productID, filename)
	url, err := provider.Upload(ctx, key, data, "")
	if err != nil {
		return nil, err
	}
	result := &UploadResult{URL: url}

	thumb, err := makeThumbnail(data)
	if err != nil {
		return result, nil
	}
	thumbKey := thumbKeyFor(key)
	if thumbURL, err := provider.Upload(ctx, thumbKey, thumb, "image/webp"); err == nil {
		result.ThumbURL = thumbURL
	}
	return result, nil
}

// makeThumbnail decodes, fits to the bounding width, and encodes webp.
func makeThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	resized := imaging.Fit(img, thumbWidth, thumbWidth, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func thumbKeyFor(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb.webp"
}
