package process

import (
	"sync"

	"splat-bench/internal/film"
)

// Func computes the pixel for one coordinate. It must be pure.
type Func func(x, y int) film.Pixel

// Process overwrites every pixel of f with fn(x, y), rows outer, columns inner.
func Process(f *film.Film, fn Func) {
	w, h := f.Width(), f.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetPixel(fn(x, y), x, y)
		}
	}
}

// ProcessParallel is Process with rows spread across a pool of workers.
// A panic in fn is re-raised on the calling goroutine once the pool has drained.
func ProcessParallel(f *film.Film, fn Func, workers int) {
	h := f.Height()
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		Process(f, fn)
		return
	}

	w := f.Width()
	rows := make(chan int, workers*2)
	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicVal  any
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
					// keep the producer from blocking on a dead pool
					for range rows {
					}
				}
			}()
			for y := range rows {
				for x := 0; x < w; x++ {
					f.SetPixel(fn(x, y), x, y)
				}
			}
		}()
	}

	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)

	wg.Wait()
	if panicVal != nil {
		panic(panicVal)
	}
}
