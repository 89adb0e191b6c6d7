package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sibexico/PageSim/paging"
)

// formatFrames renders frame contents with "-" for empty slots
func formatFrames(frames []paging.PageID) string {
	parts := make([]string, len(frames))
	for i, id := range frames {
		if id == paging.NoPage {
			parts[i] = "-"
		} else {
			parts[i] = strconv.Itoa(int(id))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func printStepHeader(out io.Writer) {
	fmt.Fprintf(out, "%5s  %5s  %-6s  %7s  %s\n", "step", "page", "result", "evicted", "frames")
}

func printStep(out io.Writer, record paging.StepRecord) {
	result := "fault"
	if record.Hit {
		result = "hit"
	}
	evicted := "-"
	if record.HasEviction() {
		evicted = strconv.Itoa(int(record.Evicted))
	}
	fmt.Fprintf(out, "%5d  %5d  %-6s  %7s  %s\n", record.Index, record.Page, result, evicted, formatFrames(record.Frames))
}

func printSummary(out io.Writer, summary paging.RunSummary) {
	fmt.Fprintf(out, "\n%s: %d accesses, %d hits, %d faults, %d evictions, hit ratio %.1f%%\n",
		summary.Algorithm,
		summary.Accesses,
		summary.Hits,
		summary.Faults,
		summary.Evictions,
		summary.HitRatio*100,
	)
}
