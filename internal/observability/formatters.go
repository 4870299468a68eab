// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hm-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReqRollups outputs the open requisitions with their stall reason
// and risk flags.
func (p *Printer) PrintReqRollups(rollups []types.HMReqRollup) {
	if len(rollups) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Open requisitions: %d\n\n", len(rollups)))

	count := min(len(rollups), maxItemsToShow)
	for i := 0; i < count; i++ {
		rr := rollups[i]
		sb.WriteString(fmt.Sprintf("%s  %s\n", rr.ReqID, rr.ReqTitle))
		sb.WriteString(fmt.Sprintf("    HM: %s  Depth: %d  Age: %dd\n", rr.HMName, rr.PipelineDepth, rr.ReqAgeDays))
		if rr.PrimaryStallReason.Code != types.StallNone {
			sb.WriteString(fmt.Sprintf("    Stall: %s\n", rr.PrimaryStallReason.Code))
		}
		if len(rr.RiskFlags) > 0 {
			flags := make([]string, 0, len(rr.RiskFlags))
			for _, f := range rr.RiskFlags {
				flags = append(flags, string(f))
			}
			sb.WriteString(fmt.Sprintf("    Risk: %s\n", strings.Join(flags, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(rollups) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more requisitions", len(rollups)-maxItemsToShow))
	}

	p.printBox("OPEN REQUISITION ROLLUPS", sb.String())
}

// PrintHMRollups outputs the per-hiring-manager summary rows.
func (p *Printer) PrintHMRollups(rollups []types.HMRollup) {
	if len(rollups) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hiring managers: %d\n\n", len(rollups)))

	count := min(len(rollups), maxItemsToShow)
	for i := 0; i < count; i++ {
		hm := rollups[i]
		sb.WriteString(fmt.Sprintf("%s\n", hm.HMName))
		sb.WriteString(fmt.Sprintf("    Reqs: %d open / %d closed  At risk: %d\n", hm.OpenReqs, hm.ClosedReqs, hm.AtRiskReqs))
		sb.WriteString(fmt.Sprintf("    Active candidates: %d  Pending actions: %d\n", hm.ActiveCandidates, hm.TotalPendingActions))
		if m := hm.LatencyMetrics.Feedback.Median; m != nil {
			sb.WriteString(fmt.Sprintf("    Feedback median: %.1fd (rank %d)\n", *m, hm.PeerComparison.Feedback.PercentileRank))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(rollups) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more hiring managers", len(rollups)-maxItemsToShow))
	}

	p.printBox("HIRING MANAGER ROLLUPS", sb.String())
}

// PrintPendingActions outputs the overdue items, worst first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPendingActions(pending []types.HMPendingAction) {
	if len(pending) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO PENDING ACTIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d pending actions:\n\n", len(pending)))

	count := min(len(pending), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := pending[i]
		sb.WriteString(fmt.Sprintf("⚠ %s  %s\n", a.ActionType, a.HMName))
		sb.WriteString(fmt.Sprintf("  %s\n", a.SuggestedAction))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(pending) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more actions", len(pending)-maxItemsToShow))
	}

	p.printBox("PENDING ACTIONS", sb.String())
}
