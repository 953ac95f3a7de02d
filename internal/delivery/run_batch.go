package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

// SceneJob runs one pipeline over one scene folder.
type SceneJob func(dir string) (*Result, error)

type SceneResult struct {
	Dir    string
	Result *Result
	Err    error
}

// NBRJob and CompositeJob adapt the pipelines for RunBatch.
func (p *Processor) NBRJob() SceneJob {
	return func(dir string) (*Result, error) {
		return p.CalculateNBR(dir, "")
	}
}

func (p *Processor) CompositeJob(bands string) SceneJob {
	return func(dir string) (*Result, error) {
		return p.CompositeBands(dir, "", bands)
	}
}

// RunBatch runs job over every immediate sub-directory of root on a pool of
// workers. A failing scene does not stop the others; results come back in
// directory order. Scenes not yet started when ctx is done are reported
// with ctx.Err(); running scenes finish.
func RunBatch(ctx context.Context, root string, job SceneJob, workers int, progress io.Writer) ([]SceneResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	dirs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}

	if workers < 1 {
		workers = 1
	}
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(dirs),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("scenes"),
		progressbar.OptionShowCount(),
	)

	results := make([]SceneResult, len(dirs))
	var mu sync.Mutex
	wp := workerpool.New(workers)
	for i, dir := range dirs {
		results[i].Dir = dir
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		wp.Submit(func() {
			var res *Result
			err := ctx.Err()
			if err == nil {
				res, err = job(dir)
			}
			mu.Lock()
			results[i].Result = res
			results[i].Err = err
			bar.Add(1)
			mu.Unlock()
		})
	}
	wp.StopWait()
	bar.Finish()

	return results, nil
}
