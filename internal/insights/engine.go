package insights

import (
	"time"

	"fjacquet/finsight/internal/aggregator"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
)

const minTransactionsForAnalysis = 3

// Options tunes ranking and the unusual-spending cap.
type Options struct {
	MinConfidence      float64
	MaxResults         int
	UnusualSpendingCap int
}

// DefaultOptions returns the stock ranking parameters.
func DefaultOptions() Options {
	return Options{
		MinConfidence:      0.5,
		MaxResults:         7,
		UnusualSpendingCap: 3,
	}
}

// Report bundles everything a dashboard needs from one analysis pass.
type Report struct {
	Insights    []models.Insight       `json:"insights" yaml:"insights"`
	HealthScore *int                   `json:"healthScore" yaml:"health_score"`
	HasData     bool                   `json:"hasData" yaml:"has_data"`
	Months      []models.MonthlyBucket `json:"months" yaml:"months"`
	Totals      models.Totals          `json:"totals" yaml:"totals"`
}

// Engine evaluates the rule registry over a user's transactions.
type Engine struct {
	opts       Options
	rules      []Rule
	aggregator *aggregator.MonthlyAggregator
	logger     logging.Logger
}

// NewEngine creates an engine with the default rule set.
func NewEngine(opts Options, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Engine{
		opts:       opts,
		rules:      DefaultRules(opts),
		aggregator: aggregator.NewMonthlyAggregator(logger),
		logger:     logger.WithField(logging.FieldComponent, "insights"),
	}
}

// Rules returns the registered rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// GenerateInsights evaluates every rule and returns the ranked result. The
// caller's slice is copied before evaluation so rules only ever see a private
// snapshot.
func (e *Engine) GenerateInsights(transactions []models.Transaction, profile models.UserProfile) []models.Insight {
	in := e.snapshot(transactions, profile)
	return e.evaluate(in)
}

// HealthScore delegates to the package-level HealthScore.
func (e *Engine) HealthScore(transactions []models.Transaction) (int, bool) {
	return HealthScore(transactions)
}

// Analyze produces a full report. Fewer than three transactions yield a
// report with HasData false and no insights.
func (e *Engine) Analyze(transactions []models.Transaction, profile models.UserProfile) Report {
	in := e.snapshot(transactions, profile)
	report := Report{
		Months: in.Months,
		Totals: models.ComputeTotals(in.Transactions),
	}
	if score, ok := HealthScore(in.Transactions); ok {
		report.HealthScore = &score
	}
	if len(in.Transactions) < minTransactionsForAnalysis {
		e.logger.Debug("Not enough transactions for insights",
			logging.F(logging.FieldUserID, profile.UserID),
			logging.F(logging.FieldCount, len(in.Transactions)))
		return report
	}
	report.HasData = true
	report.Insights = e.evaluate(in)
	return report
}

func (e *Engine) snapshot(transactions []models.Transaction, profile models.UserProfile) Input {
	txs := make([]models.Transaction, len(transactions))
	copy(txs, transactions)
	return Input{
		Transactions: txs,
		Months:       e.aggregator.Aggregate(txs),
		Profile:      profile,
	}
}

func (e *Engine) evaluate(in Input) []models.Insight {
	start := time.Now()
	var candidates []models.Insight
	for _, rule := range e.rules {
		produced := rule.Evaluate(in)
		if len(produced) > 0 {
			e.logger.Debug("Rule produced insights",
				logging.F(logging.FieldRule, string(rule.Name)),
				logging.F(logging.FieldCount, len(produced)))
		}
		candidates = append(candidates, produced...)
	}
	ranked := Rank(candidates, e.opts.MinConfidence, e.opts.MaxResults)
	e.logger.Info("Generated insights",
		logging.F(logging.FieldUserID, in.Profile.UserID),
		logging.F(logging.FieldCount, len(ranked)),
		logging.F(logging.FieldDuration, time.Since(start).String()))
	return ranked
}
