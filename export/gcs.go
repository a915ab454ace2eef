// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"golang.org/x/rankstat/rankmath"
)

// A GCS exports summaries to a Google Cloud Storage object. The
// object is tab-separated if its name ends in ".tsv" and
// comma-separated otherwise.
type GCS struct {
	Client *storage.Client
	Bucket string
	Object string
}

// Export implements rankmath.Exporter. The object is only created if
// the whole summary is written.
func (g *GCS) Export(ctx context.Context, s *rankmath.Summary) error {
	// Canceling the writer's context before Close aborts the
	// upload.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.Client.Bucket(g.Bucket).Object(g.Object).NewWriter(ctx)
	comma := Comma(g.Object)
	w.ContentType = "text/csv"
	if comma == '\t' {
		w.ContentType = "text/tab-separated-values"
	}
	if err := Write(w, s, comma); err != nil {
		cancel()
		w.Close()
		return fmt.Errorf("gs://%s/%s: %w", g.Bucket, g.Object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gs://%s/%s: %w", g.Bucket, g.Object, err)
	}
	return nil
}

// ParseGCSURL splits a "gs://bucket/object" URL into its bucket and
// object names.
func ParseGCSURL(url string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(url, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%q is not a gs:// URL", url)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("%q must name a bucket and an object", url)
	}
	return bucket, object, nil
}

// GCSConfig configures the client created by NewGCSClient.
type GCSConfig struct {
	// CredentialsFile is a service account key file.
	CredentialsFile string

	// Token is an OAuth2 access token, used instead of
	// CredentialsFile.
	Token string

	// Endpoint overrides the storage API endpoint. If it is set
	// and no credentials are given, requests are not
	// authenticated, as for a local emulator.
	Endpoint string
}

// NewGCSClient returns a storage client configured by c. With an empty
// config it uses application default credentials.
func NewGCSClient(ctx context.Context, c GCSConfig) (*storage.Client, error) {
	var opts []option.ClientOption
	switch {
	case c.Token != "":
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token})))
	case c.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	case c.Endpoint != "":
		opts = append(opts, option.WithoutAuthentication())
	}
	if c.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.Endpoint))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return client, nil
}

var _ rankmath.Exporter = (*GCS)(nil)
var _ rankmath.Exporter = (*File)(nil)
