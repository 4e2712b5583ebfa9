package quant

import (
	"errors"
	"math/rand"
	"testing"
)

func samplesOf(colors ...[3]uint8) []Sample {
	out := make([]Sample, len(colors))
	for i, c := range colors {
		out[i] = Sample{R: c[0], G: c[1], B: c[2], A: 255}
	}
	return out
}

func randomSamples(seed int64, n int) []Sample {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255}
	}
	return out
}

func TestBuildHistogram_Empty(t *testing.T) {
	_, err := buildHistogram(nil, DefaultOptions())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("got %v, want ErrInsufficientData", err)
	}
}

func TestBuildHistogram_PopulationInvariant(t *testing.T) {
	samples := randomSamples(1, 5000)
	root, err := buildHistogram(samples, DefaultOptions().normalized())
	if err != nil {
		t.Fatalf("buildHistogram failed: %v", err)
	}

	if root.population != len(samples) {
		t.Errorf("root population: got %d, want %d", root.population, len(samples))
	}

	total := 0
	for _, b := range root.buckets {
		total += b.count
		for c := 0; c < 3; c++ {
			if b.q[c] < root.min[c] || b.q[c] > root.max[c] {
				t.Fatalf("bucket %v outside root box %v..%v", b.q, root.min, root.max)
			}
		}
	}
	if total != len(samples) {
		t.Errorf("bucket population sum: got %d, want %d", total, len(samples))
	}
}

func TestBuildHistogram_Quantization(t *testing.T) {
	samples := samplesOf(
		[3]uint8{0, 0, 0},
		[3]uint8{7, 7, 7},     // same 5-bit cell as black
		[3]uint8{8, 0, 0},     // next red cell
		[3]uint8{255, 255, 255},
	)
	root, err := buildHistogram(samples, DefaultOptions().normalized())
	if err != nil {
		t.Fatalf("buildHistogram failed: %v", err)
	}

	if len(root.buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(root.buckets))
	}
	first := root.buckets[0]
	if first.q != [3]uint8{0, 0, 0} || first.count != 2 || first.sum != [3]uint64{7, 7, 7} {
		t.Errorf("first bucket: got %+v", *first)
	}
	if root.buckets[1].q != [3]uint8{1, 0, 0} {
		t.Errorf("second bucket should be first-appearance order, got %v", root.buckets[1].q)
	}
	if root.min != [3]uint8{0, 0, 0} || root.max != [3]uint8{31, 31, 31} {
		t.Errorf("root range: got %v..%v", root.min, root.max)
	}
}

func TestBuildHistogram_WorkersMatchSequential(t *testing.T) {
	samples := randomSamples(7, 20000)
	seq, err := buildHistogram(samples, DefaultOptions().normalized())
	if err != nil {
		t.Fatalf("sequential build failed: %v", err)
	}

	for _, workers := range []int{2, 3, 8, 64} {
		opts := DefaultOptions()
		opts.Workers = workers
		par, err := buildHistogram(samples, opts.normalized())
		if err != nil {
			t.Fatalf("workers=%d: build failed: %v", workers, err)
		}
		if len(par.buckets) != len(seq.buckets) {
			t.Fatalf("workers=%d: got %d buckets, want %d", workers, len(par.buckets), len(seq.buckets))
		}
		for i := range seq.buckets {
			if *par.buckets[i] != *seq.buckets[i] {
				t.Fatalf("workers=%d: bucket %d differs: %+v vs %+v", workers, i, *par.buckets[i], *seq.buckets[i])
			}
		}
	}
}

func TestSplitRange(t *testing.T) {
	covered := 0
	prevEnd := 0
	for i := 0; i < 4; i++ {
		start, end := splitRange(10, 4, i)
		if start != prevEnd {
			t.Errorf("partition %d starts at %d, want %d", i, start, prevEnd)
		}
		covered += end - start
		prevEnd = end
	}
	if covered != 10 || prevEnd != 10 {
		t.Errorf("partitions cover %d items ending at %d, want 10", covered, prevEnd)
	}
}

func TestLongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		min, max [3]uint8
		want     axis
	}{
		{"red widest", [3]uint8{0, 0, 0}, [3]uint8{20, 10, 5}, axisR},
		{"green widest", [3]uint8{0, 0, 0}, [3]uint8{1, 10, 5}, axisG},
		{"blue widest", [3]uint8{3, 3, 0}, [3]uint8{4, 4, 31}, axisB},
		{"all tied", [3]uint8{0, 0, 0}, [3]uint8{9, 9, 9}, axisR},
		{"green blue tied", [3]uint8{5, 0, 0}, [3]uint8{5, 9, 9}, axisG},
		{"red degenerate", [3]uint8{5, 1, 1}, [3]uint8{5, 1, 2}, axisB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := &colorBox{min: tt.min, max: tt.max}
			if got := box.longestAxis(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplit_Unsplittable(t *testing.T) {
	samples := samplesOf([3]uint8{1, 2, 3}, [3]uint8{4, 5, 6}, [3]uint8{1, 2, 3})
	root, err := buildHistogram(samples, DefaultOptions().normalized())
	if err != nil {
		t.Fatalf("buildHistogram failed: %v", err)
	}
	if root.splittable() {
		t.Fatal("single-bucket box reported splittable")
	}
	if _, _, err := root.split(root.longestAxis()); !errors.Is(err, errUnsplittable) {
		t.Errorf("got %v, want errUnsplittable", err)
	}
}

func TestSplit_FlatAxis(t *testing.T) {
	samples := samplesOf([3]uint8{0, 0, 0}, [3]uint8{0, 255, 0})
	root, _ := buildHistogram(samples, DefaultOptions().normalized())
	if _, _, err := root.split(axisR); !errors.Is(err, errUnsplittable) {
		t.Errorf("splitting along a flat axis: got %v, want errUnsplittable", err)
	}
}

func TestSplit_Median(t *testing.T) {
	// 256-pixel red ramp: each 5-bit red cell holds 8 pixels.
	samples := make([]Sample, 256)
	for x := range samples {
		samples[x] = Sample{R: uint8(x), A: 255}
	}
	root, err := buildHistogram(samples, DefaultOptions().normalized())
	if err != nil {
		t.Fatalf("buildHistogram failed: %v", err)
	}

	left, right, err := root.split(axisR)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if left.population != 128 || right.population != 128 {
		t.Errorf("populations: got %d/%d, want 128/128", left.population, right.population)
	}
	if left.min[axisR] != 0 || left.max[axisR] != 15 || right.min[axisR] != 16 || right.max[axisR] != 31 {
		t.Errorf("ranges: left %d..%d right %d..%d", left.min[axisR], left.max[axisR], right.min[axisR], right.max[axisR])
	}
	if left.population+right.population != root.population {
		t.Error("children do not conserve population")
	}
}

func TestSplit_MedianOnUpperEdge(t *testing.T) {
	// Most of the population sits in the top cell, so the median is the box
	// max; the cut must fall below it to keep both children non-empty.
	var colors [][3]uint8
	colors = append(colors, [3]uint8{0, 0, 0}, [3]uint8{64, 0, 0})
	for i := 0; i < 10; i++ {
		colors = append(colors, [3]uint8{255, 0, 0})
	}
	root, _ := buildHistogram(samplesOf(colors...), DefaultOptions().normalized())

	left, right, err := root.split(axisR)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if left.population != 2 || right.population != 10 {
		t.Errorf("populations: got %d/%d, want 2/10", left.population, right.population)
	}
	if left.max[axisR] != 8 || right.min[axisR] != 31 {
		t.Errorf("cut: left max %d, right min %d", left.max[axisR], right.min[axisR])
	}
}

func TestColorBox_Average(t *testing.T) {
	tests := []struct {
		name   string
		colors [][3]uint8
		want   Color
	}{
		{"single color", [][3]uint8{{128, 64, 32}, {128, 64, 32}}, Color{128, 64, 32}},
		{"rounds half up", [][3]uint8{{0, 0, 0}, {1, 3, 2}}, Color{1, 2, 1}},
		{"rounds down", [][3]uint8{{0, 0, 0}, {0, 0, 0}, {1, 1, 1}}, Color{0, 0, 0}},
		{"extremes", [][3]uint8{{255, 0, 255}}, Color{255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := buildHistogram(samplesOf(tt.colors...), Options{SignificantBits: 1, Workers: 1})
			if err != nil {
				t.Fatalf("buildHistogram failed: %v", err)
			}
			if got := box.average(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColorBox_Volume(t *testing.T) {
	box := &colorBox{min: [3]uint8{0, 2, 4}, max: [3]uint8{1, 2, 7}}
	if got := box.volume(); got != 2*1*4 {
		t.Errorf("got %d, want 8", got)
	}
}
