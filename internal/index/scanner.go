// Package index builds and serves the sorted collection of article records
// found under a content root laid out as <root>/<locale>/<slug>.mdx.
package index

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/internal/markdown"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// DocumentExtension is the suffix, compared case-insensitively, of files the scan reads.
const DocumentExtension = ".mdx"

// Scanner walks a content root and turns every document into a normalised record.
type Scanner struct {
	fs     fs.FS
	logger interfaces.Logger
}

// NewScanner constructs a scanner over fsys. The root of fsys is the content root.
func NewScanner(fsys fs.FS, logger interfaces.Logger) *Scanner {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Scanner{fs: fsys, logger: logger}
}

// Scan reads every locale directory below the root. An unreadable root yields
// an empty collection; unreadable locale directories and files are skipped.
// Records come back in directory order, unsorted.
func (s *Scanner) Scan(ctx context.Context) ([]interfaces.ArticleRecord, error) {
	records := []interfaces.ArticleRecord{}
	if s.fs == nil {
		return records, nil
	}

	entries, err := fs.ReadDir(s.fs, ".")
	if err != nil {
		logging.WithError(s.logger, err).Warn("index.scan.root_unreadable")
		return records, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()

		files, err := fs.ReadDir(s.fs, locale)
		if err != nil {
			logging.WithFields(logging.WithError(s.logger, err), map[string]any{
				"locale": locale,
			}).Warn("index.scan.locale_unreadable")
			continue
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !file.Type().IsRegular() || !IsDocument(file.Name()) {
				continue
			}

			record, ok := s.readRecord(locale, file.Name())
			if ok {
				records = append(records, record)
			}
		}
	}

	return records, nil
}

func (s *Scanner) readRecord(locale, name string) (interfaces.ArticleRecord, bool) {
	filePath := path.Join(locale, name)
	fallbackSlug := SlugFromFilename(name)
	logger := logging.WithArticleContext(s.logger, fallbackSlug, locale, filePath)

	source, err := fs.ReadFile(s.fs, filePath)
	if err != nil {
		logging.WithError(logger, err).Warn("index.scan.file_unreadable")
		return interfaces.ArticleRecord{}, false
	}

	doc, err := markdown.BuildDocument(filePath, locale, fallbackSlug, source)
	if err != nil {
		logging.WithError(logger, err).Warn("index.scan.metadata_invalid")
	}
	for _, warning := range doc.Record.Warnings {
		logging.WithFields(logger, map[string]any{
			"field":   warning.Field,
			"warning": warning.Message,
		}).Debug("index.scan.metadata_defaulted")
	}

	return doc.Record, true
}

// IsDocument reports whether name carries the document extension.
func IsDocument(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), DocumentExtension)
}

// SlugFromFilename strips the document extension from name.
func SlugFromFilename(name string) string {
	base := path.Base(name)
	if IsDocument(base) {
		return base[:len(base)-len(DocumentExtension)]
	}
	return base
}
