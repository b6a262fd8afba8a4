package main

import (
	"context"
	"fmt"
	"sync"

	"filmpress/internal/config"
	"filmpress/internal/container"
	"filmpress/internal/media/ffprobe"
)

type probeFailure struct {
	Path string
	Err  error
}

// probeAll inspects every file with a bounded pool of ffprobe workers and
// builds containers for the ones that probe cleanly. Failures are collected
// rather than aborting the batch; result order follows the input order.
func probeAll(ctx context.Context, cfg *config.Config, files []string) ([]*container.Container, []probeFailure) {
	type slot struct {
		container *container.Container
		err       error
	}

	workers := cfg.Convert.ProbeWorkers
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	slots := make([]slot, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), path)
			if err != nil {
				slots[i].err = fmt.Errorf("probe %s: %w", path, err)
				return
			}
			c, err := container.FromProbe(path, result, cfg.Encoding.OutputExtension)
			if err != nil {
				slots[i].err = err
				return
			}
			slots[i].container = c
		}(i, path)
	}
	wg.Wait()

	var containers []*container.Container
	var failures []probeFailure
	for i, s := range slots {
		if s.err != nil {
			failures = append(failures, probeFailure{Path: files[i], Err: s.err})
			continue
		}
		containers = append(containers, s.container)
	}
	return containers, failures
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
