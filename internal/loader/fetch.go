package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/scan-io-git/lottiescan/pkg/shared/files"
)

type kind int

const (
	kindFile kind = iota
	kindHTTP
	kindS3
)

func sourceKind(source string) (kind, *url.URL) {
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, _ := url.Parse(source)
		return kindHTTP, u
	case strings.HasPrefix(lower, "s3://"):
		u, _ := url.Parse(source)
		return kindS3, u
	default:
		return kindFile, nil
	}
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	k, u := sourceKind(source)
	switch k {
	case kindHTTP:
		return l.fetchHTTP(ctx, source)
	case kindS3:
		if u == nil {
			return nil, fmt.Errorf("invalid s3 URI %q", source)
		}
		return l.fetchS3(ctx, u)
	default:
		return l.fetchFile(source)
	}
}

func (l *Loader) fetchFile(source string) ([]byte, error) {
	path, err := files.ExpandPath(source)
	if err != nil {
		return nil, err
	}
	if err := files.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readLimited(f, l.maxSize)
}

func (l *Loader) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	if l.http == nil {
		return nil, fmt.Errorf("http sources are not enabled")
	}

	resp, err := l.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(source)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	body := resp.RawBody()
	if body == nil {
		return nil, fmt.Errorf("empty response body")
	}
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("unexpected response status %q", resp.Status())
	}
	l.logger.Debug("fetched document", "url", source, "status", resp.StatusCode())

	return readLimited(body, l.maxSize)
}

func (l *Loader) fetchS3(ctx context.Context, u *url.URL) ([]byte, error) {
	if l.s3 == nil {
		return nil, fmt.Errorf("s3 sources are not enabled")
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 URI must be s3://bucket/key")
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > l.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, *out.ContentLength)
	}
	l.logger.Debug("fetched object", "bucket", bucket, "key", key)

	return readLimited(out.Body, l.maxSize)
}

// readLimited reads at most max bytes from r and fails with ErrTooLarge past that.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, max)
	}
	return data, nil
}
