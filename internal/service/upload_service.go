package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"

	"github.com/google/uuid"
)

const (
	DefaultUploadDir   = "uploads"
	DefaultUploadMaxMB = 10
	// UploadURLPrefix is where stored files are served from.
	UploadURLPrefix = "/uploads/"
)

var allowedUploadExts = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// DocumentField maps a page 8 file input to its page_8 column.
type DocumentField struct {
	Field  string
	Column string
	target func(*models.Documents) **string
}

// DocumentFields lists the page 8 inputs in form order.
var DocumentFields = []DocumentField{
	{"phdCertificate", "phd_path", func(d *models.Documents) **string { return &d.PhdPath }},
	{"pgDocuments", "pg_path", func(d *models.Documents) **string { return &d.PgPath }},
	{"ugDocuments", "ug_path", func(d *models.Documents) **string { return &d.UgPath }},
	{"twelfthCertificate", "tw_path", func(d *models.Documents) **string { return &d.TwPath }},
	{"tenthCertificate", "te_path", func(d *models.Documents) **string { return &d.TePath }},
	{"paySlip", "pay_path", func(d *models.Documents) **string { return &d.PayPath }},
	{"nocUndertaking", "noc_path", func(d *models.Documents) **string { return &d.NocPath }},
	{"postPhdExperience", "post_path", func(d *models.Documents) **string { return &d.PostPath }},
	{"miscCertificate", "misc_path", func(d *models.Documents) **string { return &d.MiscPath }},
	{"signature", "sign_path", func(d *models.Documents) **string { return &d.SignPath }},
	{"researchPapers", "research_path", func(d *models.Documents) **string { return &d.ResearchPath }},
}

// Path returns the stored name d holds for this field.
func (f DocumentField) Path(d *models.Documents) *string {
	if d == nil {
		return nil
	}
	return *f.target(d)
}

// StoredFile is a file written to the upload directory.
type StoredFile struct {
	Field string
	Name  string
	Path  string
	Size  int64
}

// UploadService writes multipart files to local disk.
type UploadService struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(cfg *config.Config) *UploadService {
	dir := DefaultUploadDir
	maxMB := DefaultUploadMaxMB
	if cfg != nil {
		if cfg.UploadDir != "" {
			dir = cfg.UploadDir
		}
		if cfg.UploadMaxMB > 0 {
			maxMB = cfg.UploadMaxMB
		}
	}
	return &UploadService{dir: dir, maxBytes: int64(maxMB) * 1024 * 1024, now: time.Now}
}

// Dir is the directory files are stored in.
func (s *UploadService) Dir() string { return s.dir }

// MaxBytes is the largest accepted file.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Store writes fh as "<field>-<unixmillis><ext>". A random suffix is added
// when that name is already taken.
func (s *UploadService) Store(ctx context.Context, field string, fh *multipart.FileHeader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedUploadExts[ext]; !ok {
		return nil, models.NewValidationError(fmt.Sprintf("%s: file type %q is not allowed", field, ext))
	}
	if fh.Size > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("%s: file too large (max %dMB)", field, s.maxBytes/(1024*1024)))
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, models.NewInternalError(err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer func() { _ = src.Close() }()

	base := fmt.Sprintf("%s-%d", field, s.now().UnixMilli())
	name := base + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if errors.Is(err, os.ErrExist) {
		name = base + "-" + uuid.NewString()[:8] + ext
		dst, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	path := filepath.Join(s.dir, name)
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.maxBytes {
		err = models.NewValidationError(fmt.Sprintf("%s: file too large (max %dMB)", field, s.maxBytes/(1024*1024)))
	}
	if err != nil {
		_ = os.Remove(path)
		if models.IsCode(err, models.CodeValidation) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}

	observability.UploadedFiles.WithLabelValues(field).Inc()
	observability.UploadBytes.Observe(float64(n))
	return &StoredFile{Field: field, Name: name, Path: path, Size: n}, nil
}

// StoreFirst stores the first file submitted under field, if any.
func (s *UploadService) StoreFirst(ctx context.Context, form *multipart.Form, field string) (*StoredFile, error) {
	if form == nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return s.Store(ctx, field, files[0])
}

// StoreDocuments stores every page 8 file present in form. Absent fields stay
// nil. On error nothing written by this call is left behind.
func (s *UploadService) StoreDocuments(ctx context.Context, form *multipart.Form) (*models.Documents, []*StoredFile, error) {
	docs := &models.Documents{}
	var stored []*StoredFile
	for _, df := range DocumentFields {
		f, err := s.StoreFirst(ctx, form, df.Field)
		if err != nil {
			s.Remove(ctx, stored)
			return nil, nil, err
		}
		if f == nil {
			continue
		}
		stored = append(stored, f)
		name := f.Name
		*df.target(docs) = &name
	}
	return docs, stored, nil
}

// Remove deletes stored files, typically after the database write failed.
func (s *UploadService) Remove(ctx context.Context, files []*StoredFile) {
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			middleware.Logger.WarnContext(ctx, "failed to remove upload", "path", f.Path, "error", err)
		}
	}
}

// FileURL turns a stored name into its public URL. Nil or empty gives "".
func FileURL(name *string) string {
	if name == nil || *name == "" {
		return ""
	}
	return UploadURLPrefix + filepath.Base(*name)
}
