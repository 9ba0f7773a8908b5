package main

import (
	"fmt"
	"io"
	"time"

	"texdist/internal/publish"
)

func printStageTimings(out io.Writer, timings publish.Timings) {
	if out == nil {
		return
	}
	for _, stage := range publish.Stages() {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-10s %7.1f ms\n", stage, toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "%-10s %7.1f ms\n", "total", toMillis(timings.Total()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
