package main

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client"
)

func newImageKitAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imagekit-auth",
		Short: "Fetch short-lived credentials for a direct ImageKit upload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				auth, err := s.client.ImageKitAuth(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, auth)
			})
		},
	}
}

// imageFile reads path and determines its content type from the extension,
// falling back to sniffing the data.
func imageFile(path string) (client.ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.ImageFile{}, err
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return client.ImageFile{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}

func newUploadImageCmd() *cobra.Command {
	var postID int64

	cmd := &cobra.Command{
		Use:   "upload-image <file>",
		Short: "Upload an image through the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := imageFile(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				start := time.Now()
				res, err := client.NewImageUploader(s.client, nil, "").Upload(ctx, file, postID)
				elapsed := time.Since(start)
				if err != nil {
					log.Error().Err(err).Str("file", file.Name).Int("size", len(file.Data)).Dur("elapsed", elapsed).Msg("upload failed")
					return err
				}
				log.Debug().Str("file", file.Name).Str("url", res.URL).Dur("elapsed", elapsed).Msg("upload completed")
				printf(cmd, "%s\n", res.URL)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&postID, "post-id", 0, "Attach the image to this post")
	return cmd
}
