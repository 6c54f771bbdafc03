package main

import (
	"fmt"
	"io"
	"math"
	"time"
)

// stats accumulates min/max/mean of a series, ignoring NaN.
type stats struct {
	count int
	sum   float64
	sumSq float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.sumSq += v * v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

func (s *stats) rms() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return math.Sqrt(s.sumSq / float64(s.count))
}

func (s *stats) print(w io.Writer, title string, prec int) {
	f := fmt.Sprintf("%%.%df", prec)
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintf(w, "  count: %d\n", s.count)
	fmt.Fprintf(w, "  min:   "+f+"\n", s.min)
	fmt.Fprintf(w, "  max:   "+f+"\n", s.max)
	fmt.Fprintf(w, "  mean:  "+f+"\n", s.mean())
	fmt.Fprintf(w, "  rms:   "+f+"\n", s.rms())
}

func diffMinutes(a, b time.Time) float64 {
	// A zero time means no event.
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return math.Abs(a.Sub(b).Minutes())
}

func diffMinutesSigned(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}
