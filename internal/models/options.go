package models

// AnalyzeOptions configures one pipeline run
type AnalyzeOptions struct {
	// NewsItems is the number of headlines fetched for sentiment scoring.
	NewsItems int `json:"news_items"`
	// Years is the history span requested for trend statistics.
	Years int `json:"years"`
	// Scorecard enables the Munger-style mental-model scorecard
	// (dashboard depth).
	Scorecard bool `json:"scorecard"`
}

// Clamp bounds the options to their supported ranges and fills defaults.
func (o AnalyzeOptions) Clamp() AnalyzeOptions {
	if o.NewsItems == 0 {
		o.NewsItems = 12
	}
	if o.NewsItems < 3 {
		o.NewsItems = 3
	}
	if o.NewsItems > 40 {
		o.NewsItems = 40
	}
	if o.Years <= 0 {
		o.Years = 5
	}
	if o.Years > 10 {
		o.Years = 10
	}
	return o
}
