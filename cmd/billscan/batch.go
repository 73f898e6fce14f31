package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"billscan/internal/domain"
)

// processor is satisfied by *pipeline.Pipeline.
type processor interface {
	ProcessUpload(ctx context.Context, pdfPath string, category domain.BillCategory) (*domain.BillRecord, error)
}

type result struct {
	Path   string
	Record *domain.BillRecord
	Err    error
}

// runBatch processes every file with at most concurrency runs in flight.
// A failing file does not stop the others; results keep the input order.
func runBatch(ctx context.Context, p processor, files []string, category domain.BillCategory, concurrency int) []result {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]result, len(files))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			results[i].Path = path
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Record, results[i].Err = p.ProcessUpload(ctx, path, category)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// collectPDFs expands directories among args into the PDFs they contain.
func collectPDFs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
