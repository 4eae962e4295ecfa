package loader

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
)

var zipMagic = []byte("PK\x03\x04")

var (
	animationDirs = []string{"animations/", "a/"}
	imageDirs     = []string{"images/", "i/"}
)

// container is the content of a dotLottie archive needed to rebuild one animation.
type container struct {
	animationPath string
	animation     []byte
	images        map[string][]byte
}

type manifest struct {
	ActiveAnimationID string `json:"activeAnimationId"`
	Animations        []struct {
		ID string `json:"id"`
	} `json:"animations"`
}

func isContainer(source string, data []byte) bool {
	if bytes.HasPrefix(data, zipMagic) {
		return true
	}
	return strings.EqualFold(path.Ext(sourceBase(source)), ".lottie")
}

// openContainer reads the primary animation and the image files of a dotLottie archive.
// The primary animation is the manifest's active one, else its first one, else the
// first animation file in archive order.
func openContainer(data []byte, maxSize int64) (*container, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	var animations, images []string
	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, "/")
		if f.FileInfo().IsDir() {
			continue
		}
		entries[name] = f
		if dirOf(name, imageDirs) != "" {
			images = append(images, name)
		}
		if dirOf(name, animationDirs) != "" && strings.EqualFold(path.Ext(name), ".json") {
			animations = append(animations, name)
		}
	}

	var m manifest
	if f, ok := entries["manifest.json"]; ok {
		raw, err := readEntry(f, maxSize)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("invalid manifest.json: %w", err)
		}
	}

	primary := pickAnimation(m, entries, animations)
	if primary == "" {
		return nil, fmt.Errorf("%w: archive contains no animation", ErrNotAnimation)
	}

	c := &container{animationPath: primary, images: make(map[string][]byte)}
	if c.animation, err = readEntry(entries[primary], maxSize); err != nil {
		return nil, err
	}

	total := int64(len(c.animation))
	for _, name := range images {
		raw, err := readEntry(entries[name], maxSize-total)
		if err != nil {
			return nil, err
		}
		total += int64(len(raw))
		c.images[path.Base(name)] = raw
	}
	return c, nil
}

func pickAnimation(m manifest, entries map[string]*zip.File, animations []string) string {
	ids := make([]string, 0, len(m.Animations)+1)
	if m.ActiveAnimationID != "" {
		ids = append(ids, m.ActiveAnimationID)
	}
	for _, a := range m.Animations {
		ids = append(ids, a.ID)
	}
	for _, id := range ids {
		for _, dir := range animationDirs {
			name := dir + id + ".json"
			if _, ok := entries[name]; ok {
				return name
			}
		}
	}
	if len(animations) > 0 {
		return animations[0]
	}
	return ""
}

func dirOf(name string, dirs []string) string {
	for _, dir := range dirs {
		if strings.HasPrefix(name, dir) {
			return dir
		}
	}
	return ""
}

func readEntry(f *zip.File, maxSize int64) ([]byte, error) {
	if maxSize < 1 {
		return nil, fmt.Errorf("%w: archive content", ErrTooLarge)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := readLimited(rc, maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", f.Name, err)
	}
	return data, nil
}

// inlineImages rewrites image assets that reference an archive file into embedded
// data URIs and returns how many were rewritten.
func inlineImages(root map[string]any, images map[string][]byte) int {
	assets, _ := root["assets"].([]any)
	inlined := 0
	for _, raw := range assets {
		asset, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p, _ := asset["p"].(string)
		if p == "" || strings.HasPrefix(p, "data:") {
			continue
		}
		data, ok := images[path.Base(p)]
		if !ok {
			continue
		}
		asset["p"] = dataURI(p, data)
		asset["u"] = ""
		asset["e"] = json.Number("1")
		inlined++
	}
	return inlined
}

func dataURI(name string, data []byte) string {
	mimeType := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	var b strings.Builder
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &b)
	_, _ = io.Copy(enc, bytes.NewReader(data))
	_ = enc.Close()
	return b.String()
}
