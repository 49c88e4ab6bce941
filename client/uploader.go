package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize is the largest image ImageUploader accepts.
const MaxImageSize = 10 << 20

// ImageKit folders used by the blog.
const (
	FolderPostImages  = "blog_post_images"
	FolderCoverImages = "blogs_cover_images"
)

var (
	// ErrNotImage is returned for files whose content type is not image/*.
	ErrNotImage = errors.New("file is not an image")
	// ErrImageTooLarge is returned for files over MaxImageSize.
	ErrImageTooLarge = errors.New("image must be less than 10MB")
)

// ImageFile is an image held in memory so it can be sent more than once.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// DirectUploader sends a file straight to the image host using short-lived
// credentials issued by the backend.
type DirectUploader interface {
	Upload(ctx context.Context, auth *ImageKitAuth, file ImageFile, folder string) (*ImageUpload, error)
}

// DirectUploaderFunc adapts a function to DirectUploader.
type DirectUploaderFunc func(ctx context.Context, auth *ImageKitAuth, file ImageFile, folder string) (*ImageUpload, error)

func (f DirectUploaderFunc) Upload(ctx context.Context, auth *ImageKitAuth, file ImageFile, folder string) (*ImageUpload, error) {
	return f(ctx, auth, file, folder)
}

// ImageUploader validates images and uploads them, directly to the image
// host when a DirectUploader is configured and through the backend proxy
// otherwise or when the direct path fails.
type ImageUploader struct {
	c      *Client
	direct DirectUploader
	folder string
}

// NewImageUploader returns an uploader for folder. direct may be nil, in which
// case every upload goes through the backend.
func NewImageUploader(c *Client, direct DirectUploader, folder string) *ImageUploader {
	if folder == "" {
		folder = FolderPostImages
	}
	return &ImageUploader{c: c, direct: direct, folder: folder}
}

// Validate checks the content type and size of file.
func (u *ImageUploader) Validate(file ImageFile) error {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return fmt.Errorf("%w: %q", ErrNotImage, file.ContentType)
	}
	if len(file.Data) > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// Upload validates file and uploads it. postID is forwarded to the backend
// proxy when positive. If both paths fail the returned error joins the two
// failures.
func (u *ImageUploader) Upload(ctx context.Context, file ImageFile, postID int64) (*ImageUpload, error) {
	if err := u.Validate(file); err != nil {
		return nil, err
	}

	var directErr error
	if u.direct != nil {
		res, err := u.uploadDirect(ctx, file)
		if err == nil {
			return res, nil
		}
		directErr = err
		u.c.log.Warn().Err(err).Str("file", file.Name).Msg("direct image upload failed; falling back to backend")
	}

	res, err := u.c.UploadImage(ctx, UploadImageRequest{
		FileName:    file.Name,
		ContentType: file.ContentType,
		Data:        bytes.NewReader(file.Data),
		PostID:      postID,
	})
	if err != nil {
		if directErr != nil {
			return nil, errors.Join(directErr, err)
		}
		return nil, err
	}
	return res, nil
}

func (u *ImageUploader) uploadDirect(ctx context.Context, file ImageFile) (*ImageUpload, error) {
	auth, err := u.c.ImageKitAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("imagekit auth: %w", err)
	}
	res, err := u.direct.Upload(ctx, auth, file, "/"+u.folder)
	if err != nil {
		return nil, err
	}
	if res == nil || res.URL == "" {
		return nil, errors.New("direct upload returned no url")
	}
	return res, nil
}
