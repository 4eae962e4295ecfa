package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "output.json",
			expectFile:   filepath.Join(tmpDir, "output.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "File path with extension",
			inputPath:    filepath.Join(tmpDir, "data.json"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "data.json"),
			expectFolder: tmpDir,
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "data.json")
				_ = os.WriteFile(f, []byte("test"), 0644)
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "output_folder"),
			nameTemplate: "report.log",
			expectFile:   filepath.Join(tmpDir, "output_folder", "report.log"),
			expectFolder: filepath.Join(tmpDir, "output_folder"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "nonexistent.yaml"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "nonexistent.yaml"),
			expectFolder: tmpDir,
		},
		{
			name:         "Non-existent folder",
			inputPath:    filepath.Join(tmpDir, "missing_folder"),
			nameTemplate: "result.json",
			expectFile:   filepath.Join(tmpDir, "missing_folder", "result.json"),
			expectFolder: filepath.Join(tmpDir, "missing_folder"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualPath := tt.inputPath
			expectFile := tt.expectFile
			expectFolder := tt.expectFolder

			if tt.setup != nil {
				actualPath, expectFile, expectFolder = tt.setup(t)
			}

			filePath, folderPath, err := DetermineFileFullPath(actualPath, tt.nameTemplate)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if filePath != expectFile {
				t.Errorf("Expected file path %s, got %s", expectFile, filePath)
			}
			if folderPath != expectFolder {
				t.Errorf("Expected folder path %s, got %s", expectFolder, folderPath)
			}
		})
	}
}

func TestDiscoverDocuments(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"b.json",
		"a.lottie",
		"nested/c.JSON",
		"nested/readme.md",
		".cache/hidden.json",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}

	found, err := DiscoverDocuments(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.lottie"),
		filepath.Join(root, "b.json"),
		filepath.Join(root, "nested", "c.JSON"),
	}, found)

	single, err := DiscoverDocuments(filepath.Join(root, "nested", "readme.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "nested", "readme.md")}, single)

	_, err = DiscoverDocuments(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "anim.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	assert.NoError(t, ValidatePath(file))
	assert.ErrorContains(t, ValidatePath(dir), "is a directory")
	assert.ErrorIs(t, ValidatePath(filepath.Join(dir, "nope.json")), os.ErrNotExist)
}

func TestWriteFileCreatesFolders(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "deep", "report.json")
	require.NoError(t, WriteFile(target, []byte(`{"ok":true}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestEnsureWithinRoot(t *testing.T) {
	root := t.TempDir()

	inside, err := EnsureWithinRoot(root, filepath.Join(root, "images", "img_0.png"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "images", "img_0.png"), inside)

	_, err = EnsureWithinRoot(root, filepath.Join(root, "..", "escape.png"))
	assert.ErrorContains(t, err, "escapes root")

	sibling, err := EnsureWithinRoot(root, filepath.Join(root, "..data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "..data"), sibling)
}
