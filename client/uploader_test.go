package client

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFile(size int) ImageFile {
	return ImageFile{Name: "photo.png", ContentType: "image/png", Data: bytes.Repeat([]byte{0x89}, size)}
}

func TestImageUploader_Validate(t *testing.T) {
	t.Parallel()
	u := NewImageUploader(nil, nil, "")

	assert.ErrorIs(t, u.Validate(ImageFile{Name: "a.txt", ContentType: "text/plain", Data: []byte("x")}), ErrNotImage)
	assert.ErrorIs(t, u.Validate(pngFile(MaxImageSize+1)), ErrImageTooLarge)
	assert.NoError(t, u.Validate(pngFile(MaxImageSize)))
}

func TestImageUploader_BackendOnly(t *testing.T) {
	t.Parallel()
	srv, c, _ := newFakeClient(t)
	loginAdmin(t, c)

	res, err := NewImageUploader(c, nil, FolderCoverImages).Upload(context.Background(), pngFile(16), 7)
	require.NoError(t, err)
	assert.Contains(t, res.URL, "photo.png")
	assert.Equal(t, "image/png", res.FileType)

	uploads := srv.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "7", uploads[0].PostID)
	assert.Equal(t, int64(16), uploads[0].Size)
}

func TestImageUploader_DirectFirst(t *testing.T) {
	t.Parallel()
	srv, c, _ := newFakeClient(t)
	loginAdmin(t, c)

	var gotFolder string
	direct := DirectUploaderFunc(func(_ context.Context, auth *ImageKitAuth, f ImageFile, folder string) (*ImageUpload, error) {
		gotFolder = folder
		if auth.Token == "" {
			return nil, errors.New("missing auth")
		}
		return &ImageUpload{URL: "https://ik.example.com" + folder + "/" + f.Name}, nil
	})

	res, err := NewImageUploader(c, direct, "").Upload(context.Background(), pngFile(8), 0)
	require.NoError(t, err)
	assert.Equal(t, "/"+FolderPostImages, gotFolder)
	assert.Equal(t, "https://ik.example.com/blog_post_images/photo.png", res.URL)
	assert.Empty(t, srv.Uploads(), "backend must not be used when the direct upload succeeds")
}

func TestImageUploader_FallbackAndJoinedErrors(t *testing.T) {
	t.Parallel()
	srv, c, _ := newFakeClient(t)
	loginAdmin(t, c)
	ctx := context.Background()

	directErr := errors.New("imagekit unavailable")
	direct := DirectUploaderFunc(func(context.Context, *ImageKitAuth, ImageFile, string) (*ImageUpload, error) {
		return nil, directErr
	})
	u := NewImageUploader(c, direct, "")

	res, err := u.Upload(ctx, pngFile(8), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, res.URL)
	assert.Len(t, srv.Uploads(), 1)

	srv.FailUploads("disk full")
	_, err = u.Upload(ctx, pngFile(8), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, directErr)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, KindText, he.Kind)
	assert.Equal(t, "Image upload failed: disk full", he.Message)
}
