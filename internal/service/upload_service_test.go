package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	field, filename, content string
}

// buildForm encodes files as a multipart body and parses it back the way the
// HTTP layer does.
func buildForm(t *testing.T, fields map[string]string, files ...upload) *multipart.Form {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func newTestUploads(t *testing.T, maxBytes int64) *UploadService {
	t.Helper()
	fixed := time.UnixMilli(1767261600000)
	return &UploadService{dir: t.TempDir(), maxBytes: maxBytes, now: func() time.Time { return fixed }}
}

func TestNewUploadService_Defaults(t *testing.T) {
	s := NewUploadService(&config.Config{})
	assert.Equal(t, DefaultUploadDir, s.Dir())
	assert.EqualValues(t, DefaultUploadMaxMB*1024*1024, s.MaxBytes())

	s = NewUploadService(&config.Config{UploadDir: "/srv/files", UploadMaxMB: 2})
	assert.Equal(t, "/srv/files", s.Dir())
	assert.EqualValues(t, 2*1024*1024, s.MaxBytes())
}

func TestUploadService_Store(t *testing.T) {
	s := newTestUploads(t, 1024)
	ctx := context.Background()
	form := buildForm(t, nil,
		upload{"signature", "sign.PNG", "png-bytes"},
		upload{"signature", "again.png", "other-bytes"},
	)

	first, err := s.Store(ctx, "signature", form.File["signature"][0])
	require.NoError(t, err)
	assert.Equal(t, "signature-1767261600000.png", first.Name)
	assert.EqualValues(t, len("png-bytes"), first.Size)
	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	second, err := s.Store(ctx, "signature", form.File["signature"][1])
	require.NoError(t, err)
	assert.NotEqual(t, first.Name, second.Name)
	assert.True(t, strings.HasPrefix(second.Name, "signature-1767261600000-"), second.Name)
	assert.Equal(t, ".png", filepath.Ext(second.Name))
}

func TestUploadService_StoreRejects(t *testing.T) {
	tests := []struct {
		name string
		file upload
	}{
		{"disallowed extension", upload{"paySlip", "salary.exe", "MZ"}},
		{"no extension", upload{"paySlip", "salary", "data"}},
		{"too large", upload{"paySlip", "salary.pdf", strings.Repeat("x", 64)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestUploads(t, 32)
			form := buildForm(t, nil, tt.file)
			_, err := s.Store(context.Background(), tt.file.field, form.File[tt.file.field][0])
			assertCode(t, err, models.CodeValidation)

			entries, err := os.ReadDir(s.Dir())
			if err == nil {
				assert.Empty(t, entries, "rejected uploads leave nothing on disk")
			}
		})
	}
}

func TestUploadService_StoreDocuments(t *testing.T) {
	s := newTestUploads(t, 1024)
	ctx := context.Background()

	t.Run("absent fields stay nil", func(t *testing.T) {
		form := buildForm(t, map[string]string{"email[]": "ref@example.edu"},
			upload{"phdCertificate", "phd.pdf", "%PDF-1.7"},
			upload{"researchPapers", "papers.pdf", "%PDF-1.7"},
		)
		docs, stored, err := s.StoreDocuments(ctx, form)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		require.NotNil(t, docs.PhdPath)
		assert.Equal(t, "phdCertificate-1767261600000.pdf", *docs.PhdPath)
		require.NotNil(t, docs.ResearchPath)
		assert.Nil(t, docs.PgPath)
		assert.Nil(t, docs.SignPath)
		assert.Equal(t, "/uploads/phdCertificate-1767261600000.pdf", FileURL(docs.PhdPath))
	})

	t.Run("failure removes files already written", func(t *testing.T) {
		dir := t.TempDir()
		s := &UploadService{dir: dir, maxBytes: 1024, now: time.Now}
		form := buildForm(t, nil,
			upload{"phdCertificate", "phd.pdf", "%PDF-1.7"},
			upload{"signature", "sign.bmp", "BM"},
		)
		_, _, err := s.StoreDocuments(ctx, form)
		assertCode(t, err, models.CodeValidation)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("nil form", func(t *testing.T) {
		docs, stored, err := s.StoreDocuments(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stored)
		assert.Nil(t, docs.PhdPath)
	})
}

func TestDocumentFields_Order(t *testing.T) {
	var fields []string
	for _, df := range DocumentFields {
		fields = append(fields, df.Field)
	}
	assert.Equal(t, []string{
		"phdCertificate", "pgDocuments", "ugDocuments", "twelfthCertificate", "tenthCertificate",
		"paySlip", "nocUndertaking", "postPhdExperience", "miscCertificate", "signature", "researchPapers",
	}, fields)
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "", FileURL(nil))
	empty := ""
	assert.Equal(t, "", FileURL(&empty))
	legacy := "uploads/photo-1.jpg"
	assert.Equal(t, "/uploads/photo-1.jpg", FileURL(&legacy))
}
