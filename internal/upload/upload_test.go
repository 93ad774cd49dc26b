package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/test", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File[field]
	require.Len(t, files, 1)
	return files[0]
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "http://localhost:4000/", "/uploads/products")
	require.NoError(t, err)

	t.Run("writes the file and returns a public url", func(t *testing.T) {
		fh := multipartFile(t, "imageFiles", "shirt.PNG", "fake png bytes")

		url, err := store.Save(fh)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "http://localhost:4000/uploads/products/product-"), url)
		assert.True(t, strings.HasSuffix(url, ".png"), url)

		name := url[strings.LastIndex(url, "/")+1:]
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "fake png bytes", string(data))
	})

	t.Run("rejects non-image extensions", func(t *testing.T) {
		fh := multipartFile(t, "imageFiles", "malware.exe", "nope")

		_, err := store.Save(fh)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("generated names are unique", func(t *testing.T) {
		a, err := store.Save(multipartFile(t, "imageFiles", "a.jpg", "a"))
		require.NoError(t, err)
		b, err := store.Save(multipartFile(t, "imageFiles", "b.jpg", "b"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestStoreSaveAll(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:4000", "/uploads/products")
	require.NoError(t, err)

	files := []*multipart.FileHeader{
		multipartFile(t, "imageFiles", "1.jpg", "one"),
		multipartFile(t, "imageFiles", "2.jpg", "two"),
		multipartFile(t, "imageFiles", "3.jpg", "three"),
		multipartFile(t, "imageFiles", "4.jpg", "four"),
	}

	urls, err := store.SaveAll(files, 3)
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(dir, "http://localhost:4000", "/uploads/products")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
