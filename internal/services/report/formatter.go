// Package report renders ticker reports as sectioned console text
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/valorlabs/valor/internal/models"
)

// Depth selects how much of the report is rendered
type Depth int

const (
	// DepthAnalyze renders the compact valuation report
	DepthAnalyze Depth = iota
	// DepthDashboard adds the scorecard, checklist and narrative-risk sections
	DepthDashboard
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	labelStyles = map[string]lipgloss.Style{
		models.LabelStrongBuy:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		models.LabelBuy:              lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		models.LabelHold:             lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		models.LabelReduce:           lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		models.LabelSell:             lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		models.LabelInsufficientData: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
)

// Formatter renders TickerReports. Plain mode skips all styling for
// non-TTY output.
type Formatter struct {
	plain bool
}

// NewFormatter creates a formatter. plain disables ANSI styling.
func NewFormatter(plain bool) *Formatter {
	return &Formatter{plain: plain}
}

// Format renders the report at the requested depth.
func (f *Formatter) Format(r *models.TickerReport, depth Depth) string {
	var sb strings.Builder

	f.section(&sb, fmt.Sprintf("VALUATION REPORT: %s", r.Ticker))
	sb.WriteString(fmt.Sprintf("  Generated                  %s\n", r.GeneratedAt.Format("2006-01-02 15:04")))
	f.metric(&sb, "Current price", r.Price, false)
	if r.PriceSource != "" {
		sb.WriteString(fmt.Sprintf("  Price source               %s\n", r.PriceSource))
	}
	f.metric(&sb, "Intrinsic value estimate", r.Recommendation.IntrinsicValue, false)
	f.metric(&sb, "Margin of safety", r.Recommendation.MarginOfSafety, true)
	sb.WriteString(fmt.Sprintf("  Recommendation             %s\n", f.label(r.Recommendation.Label)))

	f.section(&sb, "FUNDAMENTAL SNAPSHOT")
	s := r.Snapshot
	f.metric(&sb, "EPS (TTM)", s.EPS, false)
	f.metric(&sb, "Book value / share", s.BVPS, false)
	f.metric(&sb, "P/E", s.PE, false)
	f.metric(&sb, "P/B", s.PB, false)
	f.metric(&sb, "ROE", s.ROE, true)
	f.metric(&sb, "Debt / equity", s.DebtToEquity, false)
	f.metric(&sb, "Dividend yield", s.DividendYield, true)
	f.metric(&sb, "Price CAGR", r.History.CAGR, true)

	f.section(&sb, "SENTIMENT")
	sb.WriteString(fmt.Sprintf("  News items fetched         %10d\n", r.NewsCount))
	sb.WriteString(fmt.Sprintf("  News items scored          %10d\n", r.Sentiment.ItemsScored))
	sb.WriteString(fmt.Sprintf("  Sentiment score            %10.3f  (-1 bearish, +1 bullish)\n", r.Sentiment.Score))

	f.section(&sb, "VALUE MODELS")
	if r.Valuation.Empty() {
		sb.WriteString("  Insufficient fundamental fields for valuation.\n")
		sb.WriteString("  Try a different ticker or check data entitlements.\n")
	} else {
		for _, m := range r.Valuation.Models {
			sb.WriteString(fmt.Sprintf("  Model[%-14s]      %14.2f\n", m.Name, m.Value))
		}
		f.metric(&sb, "Graham number", r.Valuation.GrahamNumber, false)
		sb.WriteString(fmt.Sprintf("  Growth used                %9.2f%%\n", r.Valuation.GrowthUsed*100))
		sb.WriteString(fmt.Sprintf("  Quality score              %10.3f  (-0.5 to +0.5)\n", r.Recommendation.QualityScore))
	}

	if depth == DepthDashboard {
		f.formatScorecard(&sb, r)
	}

	f.section(&sb, "DECISION")
	sb.WriteString(fmt.Sprintf("  Final recommendation       %s\n", f.label(r.Recommendation.Label)))
	switch r.Recommendation.Label {
	case models.LabelStrongBuy, models.LabelBuy:
		sb.WriteString("  Thesis: valuation and quality exceed risk constraints.\n")
	case models.LabelHold:
		sb.WriteString("  Thesis: mixed signal set; price near fair value or uncertain quality.\n")
	case models.LabelInsufficientData:
		sb.WriteString("  Thesis: not enough fundamental data to form a view.\n")
	default:
		sb.WriteString("  Thesis: weak margin of safety or quality profile not compelling.\n")
	}

	f.section(&sb, "DISCLAIMER")
	sb.WriteString("  This is an educational model, not investment advice.\n")
	sb.WriteString("  Validate assumptions with full financial statements and your own research.\n")

	return sb.String()
}

// formatScorecard renders the mental-model scorecard, checklist and
// narrative-risk sections.
func (f *Formatter) formatScorecard(sb *strings.Builder, r *models.TickerReport) {
	sc := r.Scorecard

	f.section(sb, "MENTAL MODEL SCORECARD")
	sb.WriteString(fmt.Sprintf("  Moat score (durability)    %10.3f\n", sc.Moat))
	sb.WriteString(fmt.Sprintf("  Quality score (economics)  %10.3f\n", sc.Quality))
	sb.WriteString(fmt.Sprintf("  Predictability score       %10.3f\n", sc.Predictability))
	sb.WriteString(fmt.Sprintf("  Management score           %10.3f\n", sc.Management))
	sb.WriteString(fmt.Sprintf("  Risk score (inversion)     %10.3f\n", sc.Risk))

	sb.WriteString("\n  Checklist:\n")
	sb.WriteString(fmt.Sprintf("  - Margin of safety >= 25%%  %s\n", passWarn(r.Recommendation.MarginOfSafety.Or(-1) >= 0.25)))
	sb.WriteString(fmt.Sprintf("  - High quality economics   %s\n", passWarn(sc.Quality >= 0.25)))
	sb.WriteString(fmt.Sprintf("  - Durable moat indicators  %s\n", passWarn(sc.Moat >= 0.20)))
	sb.WriteString(fmt.Sprintf("  - Balance-sheet prudence   %s\n", passWarn(sc.Risk >= 0)))
	sb.WriteString(fmt.Sprintf("  - Predictable compounding  %s\n", passWarn(sc.Predictability >= 0.10)))
	sb.WriteString("  - Circle of competence     MANUAL CHECK\n")
	sb.WriteString("  - Incentives/management    PARTIAL (proxy only)\n")

	f.section(sb, "NARRATIVE RISK")
	sb.WriteString(fmt.Sprintf("  Red-flag word hits         %10d\n", r.Sentiment.RedFlagHits))
	f.metric(sb, "Max drawdown", r.History.MaxDrawdown, true)
	f.metric(sb, "Monthly volatility", r.History.Volatility, true)
	f.metric(sb, "Positive month ratio", r.History.PositiveMonthRatio, true)
}

// section writes a styled section header.
func (f *Formatter) section(sb *strings.Builder, title string) {
	rule := strings.Repeat("=", 72)
	if f.plain {
		sb.WriteString(fmt.Sprintf("\n%s\n%s\n%s\n", rule, title, rule))
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s\n%s\n%s\n", rule, sectionStyle.Render(title), rule))
}

// metric writes one aligned metric line, N/A when unknown.
func (f *Formatter) metric(sb *strings.Builder, name string, value models.Field, percent bool) {
	if !value.Known {
		sb.WriteString(fmt.Sprintf("  %-26s %10s\n", name, "N/A"))
		return
	}
	if percent {
		sb.WriteString(fmt.Sprintf("  %-26s %9.2f%%\n", name, value.Value*100))
		return
	}
	sb.WriteString(fmt.Sprintf("  %-26s %10.2f\n", name, value.Value))
}

// label renders a recommendation label, styled unless plain.
func (f *Formatter) label(label string) string {
	text := strings.ToUpper(strings.ReplaceAll(label, "_", " "))
	if f.plain {
		return text
	}
	if style, ok := labelStyles[label]; ok {
		return style.Render(text)
	}
	return text
}

func passWarn(ok bool) string {
	if ok {
		return "PASS"
	}
	return "WARN"
}
