package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	apierrors "github.com/Eccentric-Harry/blog-frontend/client/internal/errors"
	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

// UploadFailedPrefix prefixes the plain-text message of a failed upload.
const UploadFailedPrefix = "Image upload failed: "

// GetImageKitAuth fetches credentials for a direct client-to-ImageKit upload.
func GetImageKitAuth(ctx context.Context, hc HTTPClient, baseURL string) (*types.ImageKitAuth, error) {
	res, err := Do[types.ImageKitAuth](ctx, hc, baseURL, "get imagekit auth", Request{Path: "/api/imagekit/auth"})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UploadImage sends a file through the backend upload proxy. Unlike the JSON
// endpoints, failures are read as plain text and reported as a text HTTPError.
func UploadImage(ctx context.Context, hc HTTPClient, baseURL string, req types.UploadImageRequest) (*types.ImageUpload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Data == nil {
		return nil, fmt.Errorf("upload image: file data is required")
	}

	body, contentType, err := multipartBody(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, JoinURL(baseURL, "/api/images/upload", nil), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("upload image", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !successful(resp.StatusCode) {
		return nil, apierrors.FromTextResponse(resp, UploadFailedPrefix)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("upload image", err)
	}
	var out types.ImageUpload
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &apierrors.DecodeError{Op: "upload image", Err: err}
	}
	if err := out.Validate(); err != nil {
		return nil, &apierrors.DecodeError{Op: "upload image", Err: err}
	}
	return &out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartBody(req types.UploadImageRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	name := req.FileName
	if name == "" {
		name = "upload"
	}
	ct := req.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, req.Data); err != nil {
		return nil, "", err
	}
	if req.PostID > 0 {
		if err := w.WriteField("postId", strconv.FormatInt(req.PostID, 10)); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
