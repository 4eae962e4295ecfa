package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/lottiescan/internal/loader"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
	"github.com/scan-io-git/lottiescan/pkg/shared/files"
	"github.com/scan-io-git/lottiescan/pkg/shared/httpclient"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func loadAnimation(ctx context.Context, cfg *config.Config, source string, logger hclog.Logger) (*loader.Animation, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	opts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithHTTPClient(httpclient.InitializeRestyClient(logger, cfg)),
		loader.WithMaxDocumentSize(cfg.Analyse.MaxDocumentSize),
	}
	if strings.HasPrefix(strings.ToLower(source), "s3://") {
		getter, err := loader.NewS3ObjectGetter(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		opts = append(opts, loader.WithObjectGetter(getter))
	}

	return loader.New(opts...).Load(ctx, source)
}

// outputName derives a file name for the animation when the output is a folder.
func outputName(anim *loader.Animation) string {
	base := strings.TrimSuffix(anim.Name, filepath.Ext(anim.Name))
	base = strings.Trim(unsafeFileChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "animation"
	}
	return base + ".json"
}

// writeAnimation writes the animation JSON to stdout or to outputPath and returns the
// file path written, if any.
func writeAnimation(stdout io.Writer, anim *loader.Animation, outputPath string) (string, error) {
	data, err := anim.JSON()
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		_, err := fmt.Fprintln(stdout, string(data))
		return "", err
	}

	path, folder, err := files.DetermineFileFullPath(outputPath, outputName(anim))
	if err != nil {
		return "", err
	}
	path, err = files.EnsureWithinRoot(folder, path)
	if err != nil {
		return "", err
	}
	if err := files.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
