// Package importer loads statement transactions from OFX/QFX and JSON files.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/ofx"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileResult reports what one file contributed.
type FileResult struct {
	Path       string
	Found      int
	Added      int
	Duplicates int
}

// Result is the combined import of several files.
type Result struct {
	Transactions []model.Transaction
	Files        []FileResult
	Errors       []*common.DataError // Records that could not be read.
}

// Importer reads transactions from files, deduplicating across them by
// transaction hash.
type Importer struct {
	ofx *ofx.Parser
}

// New creates an importer.
func New() *Importer {
	return &Importer{ofx: ofx.NewParser()}
}

// ExpandPaths resolves glob patterns. Patterns matching nothing are kept when
// they name an existing file.
func ExpandPaths(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err != nil {
			return nil, fmt.Errorf("no files found matching %s", pattern)
		}
		files = append(files, pattern)
	}
	return files, nil
}

// Import reads every path in order. A file that cannot be opened or parsed
// aborts the import.
func (im *Importer) Import(ctx context.Context, paths ...string) (*Result, error) {
	res := &Result{}
	seen := make(map[string]bool)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		txns, dataErrs, err := im.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		res.Errors = append(res.Errors, dataErrs...)

		fr := FileResult{Path: path, Found: len(txns)}
		for _, txn := range txns {
			if txn.Hash == "" {
				txn.Hash = txn.GenerateHash()
			}
			if seen[txn.Hash] {
				fr.Duplicates++
				continue
			}
			seen[txn.Hash] = true
			res.Transactions = append(res.Transactions, txn)
			fr.Added++
		}
		res.Files = append(res.Files, fr)

		common.LogDebug("Imported file", common.Fields{
			"file":       filepath.Base(path),
			"found":      fr.Found,
			"added":      fr.Added,
			"duplicates": fr.Duplicates,
		})
	}
	return res, nil
}

// ReadFile reads one file, choosing the format from its extension.
func (im *Importer) ReadFile(ctx context.Context, path string) ([]model.Transaction, []*common.DataError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ofx", ".qfx":
		txns, err := im.ofx.ParseFile(ctx, f)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return txns, nil, nil
	case ".json":
		txns, dataErrs, err := ReadJSON(f)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return txns, dataErrs, nil
	default:
		return nil, nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}
