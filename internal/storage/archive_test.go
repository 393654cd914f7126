package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReceiptArchive_Store(t *testing.T) {
	tempDir := t.TempDir()
	archive := NewReceiptArchive(tempDir, zap.NewNop())

	t.Run("stores under the team folder", func(t *testing.T) {
		path, err := archive.Store("team-9", "receipt-RCP-1001.pdf", []byte("%PDF-stub"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "team-9", "receipt-RCP-1001.pdf"), path)
		assert.FileExists(t, path)

		saved, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-stub"), saved)
	})

	t.Run("re-rendering overwrites the archived copy", func(t *testing.T) {
		_, err := archive.Store("team-9", "receipt-RCP-2.pdf", []byte("first"))
		require.NoError(t, err)

		path, err := archive.Store("team-9", "receipt-RCP-2.pdf", []byte("second"))
		require.NoError(t, err)

		saved, _ := os.ReadFile(path)
		assert.Equal(t, []byte("second"), saved)
	})

	t.Run("filename directory components are stripped", func(t *testing.T) {
		path, err := archive.Store("team-9", "../../../etc/receipt.pdf", []byte("x"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "team-9", "receipt.pdf"), path)
	})

	t.Run("empty team is rejected", func(t *testing.T) {
		_, err := archive.Store("", "receipt.pdf", []byte("x"))
		assert.Error(t, err)
	})
}

func TestReceiptArchive_validatePath(t *testing.T) {
	tempDir := t.TempDir()
	archive := NewReceiptArchive(tempDir, zap.NewNop())

	t.Run("accepts a path inside the root", func(t *testing.T) {
		assert.NoError(t, archive.validatePath(filepath.Join(tempDir, "team", "file.pdf")))
	})

	t.Run("rejects a path outside the root", func(t *testing.T) {
		err := archive.validatePath("/etc/passwd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes archive root")
	})

	t.Run("rejects traversal out of the root", func(t *testing.T) {
		err := archive.validatePath(filepath.Join(tempDir, "..", "..", "etc", "passwd"))
		assert.Error(t, err)
	})
}
