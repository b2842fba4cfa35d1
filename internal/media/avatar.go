package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/elitehands/elitehands-api/internal/config"
	"github.com/elitehands/elitehands-api/internal/httperr"
)

const avatarMaxDim = 512

// Store uploads processed profile pictures to S3-compatible object storage.
// Without credentials the store is disabled and avatar uploads answer 400.
type Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewStore(cfg *config.Config) *Store {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return &Store{}
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Store{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}
}

func (s *Store) Enabled() bool {
	return s.client != nil
}

// UploadAvatar decodes a png/jpeg, scales it down to fit 512px and stores it
// as webp. Returns the public URL.
func (s *Store) UploadAvatar(ctx context.Context, userID uint, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", httperr.ErrBusiness("media_disabled", "Avatar uploads are not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image", "File must be a PNG or JPEG image")
	}

	dst := scaleDown(src, avatarMaxDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 85}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%d_%d.webp", userID, time.Now().Unix())

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	}); err != nil {
		return "", err
	}

	if s.publicBase == "" {
		return "/" + key, nil
	}
	return s.publicBase + "/" + key, nil
}

func scaleDown(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
