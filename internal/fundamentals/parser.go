// Package fundamentals parses semi-structured vendor fundamentals
// documents into a fixed, presence-aware snapshot.
package fundamentals

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/valorlabs/valor/internal/models"
)

// fieldSpec maps one snapshot slot to its vendor name variants. Alias
// matching is case-insensitive. Percent fields are normalized to
// fractions when the vendor reports whole percentages.
type fieldSpec struct {
	aliases []string
	percent bool
	assign  func(*models.FundamentalSnapshot, models.Field)
}

// fieldTable is the single source of truth for field-name normalization.
var fieldTable = []fieldSpec{
	{
		aliases: []string{"EPS", "EPS_TTM", "TTMEPSXCLX", "DilutedEPSExclExtraTTM", "EarningsShare"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.EPS = f },
	},
	{
		aliases: []string{"BookValuePerShare", "BVPS", "QBVPS", "BookValue"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.BVPS = f },
	},
	{
		aliases: []string{"PERatio", "PE", "TTMPR2EPS"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.PE = f },
	},
	{
		aliases: []string{"Price2Book", "PriceToBook", "PB", "PriceBookMRQ"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.PB = f },
	},
	{
		aliases: []string{"ROE", "ReturnOnEquity", "TTMROEPCT", "ReturnOnEquityTTM"},
		percent: true,
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.ROE = f },
	},
	{
		aliases: []string{"ROIC", "ReturnOnInvestedCapital"},
		percent: true,
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.ROIC = f },
	},
	{
		aliases: []string{"GrossMargin", "TTMGROSMGN", "GrossProfitMargin"},
		percent: true,
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.GrossMargin = f },
	},
	{
		aliases: []string{"OperatingMargin", "TTMOPMGN", "OperatingMarginTTM"},
		percent: true,
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.OperatingMargin = f },
	},
	{
		aliases: []string{"NetProfitMargin", "TTMNPMGN", "ProfitMargin"},
		percent: true,
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.NetMargin = f },
	},
	{
		aliases: []string{"DebtToEquity", "TotalDebtToEquity", "LTDebt2Equity"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.DebtToEquity = f },
	},
	{
		aliases: []string{"CurrentRatio"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.CurrentRatio = f },
	},
	{
		aliases: []string{"InterestCoverage"},
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.InterestCoverage = f },
	},
	{
		aliases: []string{"DividendYield", "DivYield"},
		percent: true,
		assign:  func(s *models.FundamentalSnapshot, f models.Field) { s.DividendYield = f },
	},
}

// unknownTokens are string values that mean "no data" across vendors.
var unknownTokens = map[string]struct{}{
	"": {}, "N/A": {}, "NA": {}, "NONE": {}, "NULL": {}, "-": {},
}

// ParseNumber coerces a semi-structured value to a Field. Strings are
// trimmed, comma-stripped, and placeholder tokens map to unknown. NaN and
// infinities are unknown. Unsupported types are unknown.
func ParseNumber(v any) models.Field {
	switch n := v.(type) {
	case nil:
		return models.Unknown()
	case float64:
		return models.NewField(n)
	case float32:
		return models.NewField(float64(n))
	case int:
		return models.NewField(float64(n))
	case int64:
		return models.NewField(float64(n))
	case string:
		text := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if _, ok := unknownTokens[strings.ToUpper(text)]; ok {
			return models.Unknown()
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return models.Unknown()
		}
		return models.NewField(parsed)
	default:
		return models.Unknown()
	}
}

// NormalizeRatio converts a percent-or-fraction value to a fraction:
// 87.3 becomes 0.873, 0.873 stays 0.873.
func NormalizeRatio(f models.Field) models.Field {
	if !f.Known {
		return f
	}
	if math.Abs(f.Value) > 1 {
		return models.NewField(f.Value / 100.0)
	}
	return f
}

// Parse extracts the fixed snapshot from a vendor payload. A nil or
// entirely unparseable payload yields a snapshot with all fields unknown;
// Parse never returns an error and has no side effects.
func Parse(payload *models.FundamentalsPayload) models.FundamentalSnapshot {
	var snapshot models.FundamentalSnapshot
	if payload == nil {
		return snapshot
	}

	metrics := map[string]models.Field{}
	if payload.XML != "" {
		collectXMLMetrics(payload.XML, metrics)
	}
	if payload.Raw != nil {
		collectJSONMetrics(payload.Raw, metrics, 0)
	}
	if len(metrics) == 0 {
		return snapshot
	}

	// Lowercased lookup so vendor casing never matters
	lowered := make(map[string]models.Field, len(metrics))
	for name, value := range metrics {
		lowered[strings.ToLower(name)] = value
	}

	for _, spec := range fieldTable {
		for _, alias := range spec.aliases {
			value, ok := lowered[strings.ToLower(alias)]
			if !ok || !value.Known {
				continue
			}
			if spec.percent {
				value = NormalizeRatio(value)
			}
			spec.assign(&snapshot, value)
			break
		}
	}

	return snapshot
}

// xmlNameAttrs and xmlValueAttrs are the attribute-name variants seen in
// IB-style ReportSnapshot documents.
var (
	xmlNameAttrs  = []string{"FieldName", "fieldName", "Name", "name", "Tag", "tag"}
	xmlValueAttrs = []string{"Value", "value", "v"}
)

// collectXMLMetrics walks every element of an IB-style ReportSnapshot
// document, reading the metric name from a name-like attribute and the
// value from a value-like attribute or the element text. Malformed XML is
// ignored and contributes nothing.
func collectXMLMetrics(doc string, out map[string]models.Field) {
	decoder := xml.NewDecoder(strings.NewReader(doc))

	var pending string // metric name awaiting element text
	for {
		token, err := decoder.Token()
		if err != nil {
			return // io.EOF or malformed input: keep what we have
		}

		switch t := token.(type) {
		case xml.StartElement:
			pending = ""
			name := ""
			for _, attrName := range xmlNameAttrs {
				if v := attrValue(t, attrName); v != "" {
					name = strings.TrimSpace(v)
					break
				}
			}
			if name == "" {
				continue
			}

			assigned := false
			for _, attrName := range xmlValueAttrs {
				if v, ok := attrLookup(t, attrName); ok {
					if f := ParseNumber(v); f.Known {
						out[name] = f
					}
					assigned = true
					break
				}
			}
			if !assigned {
				pending = name
			}
		case xml.CharData:
			if pending == "" {
				continue
			}
			if f := ParseNumber(string(t)); f.Known {
				out[pending] = f
			}
			pending = ""
		case xml.EndElement:
			pending = ""
		}
	}
}

func attrValue(el xml.StartElement, name string) string {
	v, _ := attrLookup(el, name)
	return v
}

func attrLookup(el xml.StartElement, name string) (string, bool) {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// maxJSONDepth bounds recursion into nested vendor sections.
const maxJSONDepth = 4

// collectJSONMetrics flattens nested vendor JSON into leaf metrics. The
// leaf key wins; section names exist only for navigation.
func collectJSONMetrics(node map[string]any, out map[string]models.Field, depth int) {
	if depth > maxJSONDepth {
		return
	}
	for key, value := range node {
		switch child := value.(type) {
		case map[string]any:
			collectJSONMetrics(child, out, depth+1)
		default:
			if f := ParseNumber(value); f.Known {
				out[key] = f
			}
		}
	}
}
