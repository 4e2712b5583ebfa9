package quant

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// axis identifies a color channel. The declaration order is also the
// tie-break order used by longestAxis.
type axis int

const (
	axisR axis = iota
	axisG
	axisB
)

func (a axis) String() string {
	return [...]string{"r", "g", "b"}[a]
}

// bucket is one populated histogram cell.
type bucket struct {
	q     [3]uint8  // quantized r, g, b
	count int       // samples in the cell
	sum   [3]uint64 // sums of the exact 8-bit r, g, b values
}

// histogram is a sparse 3-D histogram. Buckets are stored in the order their
// first sample was seen, which keeps everything downstream deterministic.
type histogram struct {
	shift   uint
	buckets []*bucket
	index   map[uint32]int
}

func newHistogram(bits int) *histogram {
	return &histogram{
		shift: uint(8 - bits),
		index: make(map[uint32]int),
	}
}

func (h *histogram) key(q [3]uint8) uint32 {
	return uint32(q[0])<<16 | uint32(q[1])<<8 | uint32(q[2])
}

func (h *histogram) add(s Sample) {
	q := [3]uint8{s.R >> h.shift, s.G >> h.shift, s.B >> h.shift}
	k := h.key(q)
	i, ok := h.index[k]
	if !ok {
		i = len(h.buckets)
		h.index[k] = i
		h.buckets = append(h.buckets, &bucket{q: q})
	}
	b := h.buckets[i]
	b.count++
	b.sum[0] += uint64(s.R)
	b.sum[1] += uint64(s.G)
	b.sum[2] += uint64(s.B)
}

// merge adds every bucket of o into h. Buckets new to h are appended in o's
// order, so merging partitions in sample order reproduces the sequential
// bucket order exactly.
func (h *histogram) merge(o *histogram) {
	for _, ob := range o.buckets {
		k := h.key(ob.q)
		if i, ok := h.index[k]; ok {
			b := h.buckets[i]
			b.count += ob.count
			for c := range b.sum {
				b.sum[c] += ob.sum[c]
			}
			continue
		}
		h.index[k] = len(h.buckets)
		nb := *ob
		h.buckets = append(h.buckets, &nb)
	}
}

func (h *histogram) population() int {
	total := 0
	for _, b := range h.buckets {
		total += b.count
	}
	return total
}

// buildHistogram buckets samples and returns the root box spanning the
// populated range. With opts.Workers > 1 the samples are split into
// contiguous partitions that are bucketed concurrently and merged in order.
func buildHistogram(samples []Sample, opts Options) (*colorBox, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no pixels left after filtering", ErrInsufficientData)
	}

	workers := clampInt(opts.Workers, 1, len(samples))
	if workers == 1 {
		h := newHistogram(opts.SignificantBits)
		for _, s := range samples {
			h.add(s)
		}
		return newColorBox(h.buckets), nil
	}

	parts := make([]*histogram, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		start, end := splitRange(len(samples), workers, w)
		g.Go(func() error {
			h := newHistogram(opts.SignificantBits)
			for _, s := range samples[start:end] {
				h.add(s)
			}
			parts[w] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := newHistogram(opts.SignificantBits)
	for _, p := range parts {
		merged.merge(p)
	}
	return newColorBox(merged.buckets), nil
}

// splitRange returns the half-open range of partition i out of n over
// length items.
func splitRange(length, n, i int) (int, int) {
	chunk := length / n
	rem := length % n
	start := i*chunk + min(i, rem)
	end := start + chunk
	if i < rem {
		end++
	}
	return start, end
}

// colorBox is an axis-aligned region of bucket space. min and max are
// inclusive and always tight around the buckets the box holds.
type colorBox struct {
	buckets    []*bucket
	min, max   [3]uint8
	population int
	sum        [3]uint64
}

func newColorBox(buckets []*bucket) *colorBox {
	box := &colorBox{buckets: buckets}
	if len(buckets) == 0 {
		return box
	}
	box.min = buckets[0].q
	box.max = buckets[0].q
	for _, b := range buckets {
		box.population += b.count
		for c := 0; c < 3; c++ {
			box.sum[c] += b.sum[c]
			if b.q[c] < box.min[c] {
				box.min[c] = b.q[c]
			}
			if b.q[c] > box.max[c] {
				box.max[c] = b.q[c]
			}
		}
	}
	return box
}

func (b *colorBox) span(a axis) int {
	return int(b.max[a]) - int(b.min[a])
}

// volume is the box size in buckets.
func (b *colorBox) volume() int {
	return (b.span(axisR) + 1) * (b.span(axisG) + 1) * (b.span(axisB) + 1)
}

func (b *colorBox) splittable() bool {
	return b.min != b.max
}

// longestAxis returns the channel with the widest span, preferring r, then
// g, then b on ties.
func (b *colorBox) longestAxis() axis {
	best := axisR
	for a := axisG; a <= axisB; a++ {
		if b.span(a) > b.span(best) {
			best = a
		}
	}
	return best
}

// split cuts the box along a at the population median M, returning the
// children [min..M] and [M+1..max]. Both children are non-empty. A box that
// is a single bucket, or flat along a, yields errUnsplittable.
func (b *colorBox) split(a axis) (*colorBox, *colorBox, error) {
	if !b.splittable() || b.span(a) == 0 {
		return nil, nil, errUnsplittable
	}

	ordered := make([]*bucket, len(b.buckets))
	copy(ordered, b.buckets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].q[a] < ordered[j].q[a]
	})

	top := b.max[a]
	cut := top
	acc := 0
	for _, bk := range ordered {
		acc += bk.count
		if 2*acc >= b.population {
			cut = bk.q[a]
			break
		}
	}
	if cut == top {
		// The median sits on the upper edge; cut below it so the right
		// child keeps only the top value.
		for _, bk := range ordered {
			if bk.q[a] < top {
				cut = bk.q[a]
			}
		}
	}

	i := sort.Search(len(ordered), func(i int) bool {
		return ordered[i].q[a] > cut
	})
	return newColorBox(ordered[:i]), newColorBox(ordered[i:]), nil
}

// average is the population-weighted mean color, rounded to nearest.
func (b *colorBox) average() Color {
	if b.population == 0 {
		return Color{}
	}
	p := uint64(b.population)
	return Color{
		R: uint8((b.sum[0] + p/2) / p),
		G: uint8((b.sum[1] + p/2) / p),
		B: uint8((b.sum[2] + p/2) / p),
	}
}
