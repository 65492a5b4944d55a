package voice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/finsight/internal/currencyutils"
	"fjacquet/finsight/internal/dateutils"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionStore is the part of the transaction store the executor uses.
type TransactionStore interface {
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}

// UI receives the presentation side effects of executed commands. Hosts
// without a screen may pass nil to NewExecutor.
type UI interface {
	Navigate(route string)
	ScrollTo(element string)
	Filter(category string)
	FilterDate(date string)
	ShowHelp(groups []HelpGroup)
}

// Result describes what an executed command did.
type Result struct {
	Command     Command             `json:"command"`
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
	Balance     *decimal.Decimal    `json:"balance,omitempty"`
	Deleted     int                 `json:"deleted"`
	Help        []HelpGroup         `json:"help,omitempty"`
}

// Executor dispatches commands to the store and the UI.
type Executor struct {
	store    TransactionStore
	ui       UI
	currency string
	now      func() time.Time
	logger   logging.Logger
}

// ExecutorOption customises an Executor.
type ExecutorOption func(*Executor)

// WithCurrency sets the symbol used in spoken amounts.
func WithCurrency(symbol string) ExecutorOption {
	return func(e *Executor) {
		if symbol != "" {
			e.currency = symbol
		}
	}
}

// WithClock overrides the clock that dates new transactions.
func WithClock(now func() time.Time) ExecutorOption {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExecutor creates an executor. ui may be nil.
func NewExecutor(store TransactionStore, ui UI, logger logging.Logger, opts ...ExecutorOption) *Executor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	e := &Executor{
		store:    store,
		ui:       ui,
		currency: "$",
		now:      time.Now,
		logger:   logger.WithField(logging.FieldComponent, "voice.executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs cmd for userID. Store errors are returned unchanged and are
// not retried. stop_listening has no effect here; sessions handle it.
func (e *Executor) Execute(ctx context.Context, userID string, cmd Command) (Result, error) {
	log := e.logger.WithFields(
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldCommand, string(cmd.Type)),
	)

	result, err := e.dispatch(ctx, userID, cmd)
	if err != nil {
		log.WithError(err).Error("Voice command failed", logging.F(logging.FieldCount, result.Deleted))
		result.Command = cmd
		return result, err
	}
	result.Command = cmd
	log.Info("Executed voice command", logging.F("message", result.Message))
	return result, nil
}

func (e *Executor) dispatch(ctx context.Context, userID string, cmd Command) (Result, error) {
	switch cmd.Type {
	case CommandAddExpense, CommandAddIncome:
		return e.addTransaction(ctx, userID, cmd)
	case CommandNavigate:
		if e.ui != nil {
			e.ui.Navigate(cmd.Route)
		}
		return Result{Message: "Navigating to dashboard"}, nil
	case CommandScrollTo:
		if e.ui != nil {
			e.ui.ScrollTo(cmd.Element)
		}
		return Result{Message: fmt.Sprintf("Scrolling to %s", cmd.Element)}, nil
	case CommandFilter:
		if e.ui != nil {
			e.ui.Filter(cmd.Category)
		}
		return Result{Message: fmt.Sprintf("Filtering by %s", cmd.Category)}, nil
	case CommandFilterDate:
		if e.ui != nil {
			e.ui.FilterDate(cmd.Date)
		}
		return Result{Message: fmt.Sprintf("Showing %s's transactions", cmd.Date)}, nil
	case CommandGetBalance:
		return e.balance(ctx, userID)
	case CommandDeleteLast:
		return e.deleteLast(ctx, userID)
	case CommandDeleteCategory:
		return e.deleteCategory(ctx, userID, cmd.Category)
	case CommandShowHelp:
		help := HelpCatalogue()
		if e.ui != nil {
			e.ui.ShowHelp(help)
		}
		return Result{Message: "Here are the available commands", Help: help}, nil
	default:
		return Result{Message: cmd.ResponseMessage(e.currency)}, nil
	}
}

func (e *Executor) addTransaction(ctx context.Context, userID string, cmd Command) (Result, error) {
	tx := models.Transaction{
		UserID:      userID,
		Type:        models.TypeExpense,
		Amount:      cmd.Amount,
		Category:    cmd.Category,
		Description: cmd.Description,
		Date:        dateutils.ToISODate(e.now()),
	}
	kind := "expense"
	if cmd.Type == CommandAddIncome {
		tx.Type = models.TypeIncome
		kind = "income"
	}
	if tx.Category == "" {
		tx.Category = models.CategoryOther
		if tx.Type == models.TypeIncome {
			tx.Category = models.CategoryOtherIncome
		}
	}

	created, err := e.store.Create(ctx, tx)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Message:     fmt.Sprintf("Added %s%s %s for %s", e.currency, cmd.Amount.String(), kind, tx.Category),
		Transaction: &created,
	}, nil
}

func (e *Executor) balance(ctx context.Context, userID string) (Result, error) {
	txs, err := e.store.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	balance := models.ComputeTotals(txs).Balance
	return Result{
		Message: "Your current balance is " + currencyutils.FormatAmount(balance, e.currency),
		Balance: &balance,
	}, nil
}

// deleteLast removes the transaction with the latest date. Ties go to the one
// listed later, and unparseable dates sort before every valid one.
func (e *Executor) deleteLast(ctx context.Context, userID string) (Result, error) {
	txs, err := e.store.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if len(txs) == 0 {
		return Result{Message: "No transactions to delete"}, nil
	}

	latest := 0
	var latestDate time.Time
	for i, t := range txs {
		d, err := t.ParsedDate()
		if err != nil {
			d = time.Time{}
		}
		if i == 0 || !d.Before(latestDate) {
			latest, latestDate = i, d
		}
	}

	target := txs[latest]
	if err := e.store.Delete(ctx, userID, target.ID); err != nil {
		return Result{}, err
	}
	return Result{
		Message:     "Deleted the last transaction",
		Transaction: &target,
		Deleted:     1,
	}, nil
}

func (e *Executor) deleteCategory(ctx context.Context, userID, category string) (Result, error) {
	txs, err := e.store.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	deleted := 0
	for _, t := range txs {
		if !t.IsExpense() || !strings.EqualFold(t.Category, category) {
			continue
		}
		if err := e.store.Delete(ctx, userID, t.ID); err != nil {
			return Result{
				Message: fmt.Sprintf("Deleted %d %s expenses before failing", deleted, category),
				Deleted: deleted,
			}, err
		}
		deleted++
	}

	if deleted == 0 {
		return Result{Message: fmt.Sprintf("No %s expenses to delete", category)}, nil
	}
	return Result{
		Message: fmt.Sprintf("Deleted all %s expenses (%d removed)", category, deleted),
		Deleted: deleted,
	}, nil
}
