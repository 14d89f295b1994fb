package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxPhotoEdge = 1024
	webpQuality  = 85
)

// PhotoStore re-encodes profile photos as webp and puts them on S3.
type PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewPhotoStore(region, accessKey, secretKey, bucket, baseURL string) *PhotoStore {
	if bucket == "" {
		return nil
	}

	cfg := aws.Config{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		),
	}

	return &PhotoStore{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (p *PhotoStore) Enabled() bool {
	return p != nil
}

// SaveProfilePhoto decodes, downscales, converts to webp and uploads.
// Returns the public URL.
func (p *PhotoStore) SaveProfilePhoto(ctx context.Context, userID uint, r io.Reader) (string, error) {
	if p == nil {
		return "", fmt.Errorf("photo storage not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	img := downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("profiles/%d.webp", userID)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return p.baseURL + "/" + key, nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPhotoEdge && h <= maxPhotoEdge {
		return src
	}

	scale := float64(maxPhotoEdge) / float64(w)
	if h > w {
		scale = float64(maxPhotoEdge) / float64(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
