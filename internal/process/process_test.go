package process

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"splat-bench/internal/film"
)

func newFilm(t testing.TB, w, h int) *film.Film {
	t.Helper()
	f, err := film.New(w, h)
	if err != nil {
		t.Fatalf("film.New(%d, %d): %v", w, h, err)
	}
	return f
}

func coordFn(x, y int) film.Pixel {
	return film.Pixel{XYZ: [3]float32{float32(x), float32(y), 0}, Weight: 1}
}

func TestProcess2x2(t *testing.T) {
	f := newFilm(t, 2, 2)
	Process(f, coordFn)

	want := []film.Pixel{
		{XYZ: [3]float32{0, 0, 0}, Weight: 1},
		{XYZ: [3]float32{1, 0, 0}, Weight: 1},
		{XYZ: [3]float32{0, 1, 0}, Weight: 1},
		{XYZ: [3]float32{1, 1, 0}, Weight: 1},
	}
	for i, p := range f.Pixels() {
		if p != want[i] {
			t.Errorf("pixel %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestProcessVisitsEachOnce(t *testing.T) {
	const w, h = 13, 7
	f := newFilm(t, w, h)
	counts := make([]int, w*h)
	var order []int
	Process(f, func(x, y int) film.Pixel {
		counts[y*w+x]++
		order = append(order, y*w+x)
		return film.Pixel{}
	})
	for i, c := range counts {
		if c != 1 {
			t.Errorf("coordinate %d visited %d times", i, c)
		}
	}
	for i, idx := range order {
		if idx != i {
			t.Fatalf("visit %d hit index %d, want row-major order", i, idx)
		}
	}
}

func TestProcessParallelVisitsEachOnce(t *testing.T) {
	const w, h = 31, 17
	for _, workers := range []int{0, 1, 2, 4, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			f := newFilm(t, w, h)
			// each row belongs to one goroutine, so the cells are never shared
			counts := make([]int, w*h)
			ProcessParallel(f, func(x, y int) film.Pixel {
				counts[y*w+x]++
				return coordFn(x, y)
			}, workers)
			for i, c := range counts {
				if c != 1 {
					t.Errorf("coordinate %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestProcessParallelMatchesSerial(t *testing.T) {
	const w, h = 64, 40
	fn := Sine(0.03)
	serial := newFilm(t, w, h)
	Process(serial, fn)

	parallel := newFilm(t, w, h)
	ProcessParallel(parallel, fn, 4)

	for i := range serial.Pixels() {
		if serial.Pixels()[i] != parallel.Pixels()[i] {
			t.Fatalf("pixel %d differs: %+v vs %+v", i, serial.Pixels()[i], parallel.Pixels()[i])
		}
	}
}

func TestProcessDeterministic(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := Lookup(name, 48, 32)
			if err != nil {
				t.Fatal(err)
			}
			a := newFilm(t, 48, 32)
			b := newFilm(t, 48, 32)
			Process(a, fn)
			Process(b, fn)
			for i := range a.Pixels() {
				if a.Pixels()[i] != b.Pixels()[i] {
					t.Fatalf("pixel %d differs between runs", i)
				}
			}
		})
	}
}

func TestProcessOverwrites(t *testing.T) {
	f := newFilm(t, 3, 3)
	Process(f, func(x, y int) film.Pixel { return film.Pixel{Weight: 5} })
	Process(f, coordFn)
	if got := f.At(2, 1); got != coordFn(2, 1) {
		t.Errorf("At(2,1) = %+v after second pass", got)
	}
}

func TestProcessPanicPropagates(t *testing.T) {
	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			f := newFilm(t, 8, 8)
			defer func() {
				if r := recover(); r != "boom" {
					t.Errorf("recovered %v, want boom", r)
				}
			}()
			ProcessParallel(f, func(x, y int) film.Pixel {
				if x == 4 && y == 5 {
					panic("boom")
				}
				return film.Pixel{}
			}, workers)
			t.Error("no panic")
		})
	}
}

func TestSine(t *testing.T) {
	fn := Sine(0.03)
	p := fn(100, 200)
	want := float32(math.Sin(0.03 * 0.03 * 100 * 200))
	if p.XYZ[0] != want || p.XYZ[1] != 0 || p.XYZ[2] != 0 || p.Weight != 1 {
		t.Errorf("Sine(0.03)(100,200) = %+v, want {%v 0 0} 1", p, want)
	}
	if got := fn(0, 511); got.XYZ[0] != 0 {
		t.Errorf("x=0 should give sin(0) = 0, got %v", got.XYZ[0])
	}
}

func TestGradient(t *testing.T) {
	fn := Gradient(5, 3)
	if p := fn(4, 2); p.XYZ[0] != 1 || p.XYZ[1] != 1 {
		t.Errorf("corner = %+v", p)
	}
	if p := fn(0, 0); p.XYZ[0] != 0 || p.XYZ[1] != 0 {
		t.Errorf("origin = %+v", p)
	}
	// single column or row does not divide by zero
	if p := Gradient(1, 1)(0, 0); p.XYZ[0] != 0 || p.XYZ[1] != 0 {
		t.Errorf("1x1 = %+v", p)
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("", 4, 4); err != nil {
		t.Errorf("default workload: %v", err)
	}
	if _, err := Lookup("mandelbrot", 4, 4); !errors.Is(err, ErrUnknownWorkload) {
		t.Errorf("unknown workload err = %v", err)
	}
	names := Names()
	if len(names) != 4 || names[0] != "bench" {
		t.Errorf("Names() = %v", names)
	}
}

func BenchmarkProcess(b *testing.B) {
	for _, size := range []int{64, 512, 1024} {
		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("%dx%d/workers=%d", size, size, workers), func(b *testing.B) {
				f := newFilm(b, size, size)
				fn := Sine(0.03)
				b.ReportAllocs()
				for b.Loop() {
					ProcessParallel(f, fn, workers)
				}
			})
		}
	}
}
