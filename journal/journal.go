package journal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/tradedash/id"
)

var (
	// ErrInvalidTrade is wrapped by every construction-time validation error.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrNotFound is returned by stores when a trade id is unknown.
	ErrNotFound = errors.New("trade not found")
)

// Side is the trade direction.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// ParseSide accepts long/short in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Long:
		return Long, nil
	case Short:
		return Short, nil
	}
	return "", fmt.Errorf("%w: side %q (want long or short)", ErrInvalidTrade, s)
}

// Result is the trade outcome. Exactly one of win or loss holds per record.
type Result string

const (
	Win  Result = "win"
	Loss Result = "loss"
)

// ParseResult accepts win/loss in any case.
func ParseResult(s string) (Result, error) {
	switch Result(strings.ToLower(strings.TrimSpace(s))) {
	case Win:
		return Win, nil
	case Loss:
		return Loss, nil
	}
	return "", fmt.Errorf("%w: result %q (want win or loss)", ErrInvalidTrade, s)
}

// Trade is a single journal entry. Records are replaced wholesale on edit.
//
// Date and Time are kept as the literal strings the user entered
// (YYYY-MM-DD and HH:MM, local wall clock) so that no timezone conversion
// ever shifts a trade onto another day.
type Trade struct {
	ID         string   `json:"id" yaml:"id"`
	Date       string   `json:"date" yaml:"date"`
	Time       string   `json:"time" yaml:"time"`
	Side       Side     `json:"side" yaml:"side"`
	Instrument string   `json:"instrument" yaml:"instrument"`
	Result     Result   `json:"result" yaml:"result"`
	RiskReward float64  `json:"riskReward" yaml:"risk_reward"`
	ProfitLoss *float64 `json:"profitLoss,omitempty" yaml:"profit_loss,omitempty"`
	Notes      string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// PnL returns the profit/loss, treating an absent value as zero.
func (t Trade) PnL() float64 {
	if t.ProfitLoss == nil {
		return 0
	}
	return *t.ProfitLoss
}

// Float is a small helper for building trades with a P&L literal.
func Float(v float64) *float64 {
	return &v
}

// Validate checks the fields a new trade must carry.
func (t Trade) Validate() error {
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return fmt.Errorf("%w: date %q (want YYYY-MM-DD)", ErrInvalidTrade, t.Date)
	}
	if _, err := time.Parse("15:04", t.Time); err != nil {
		return fmt.Errorf("%w: time %q (want HH:MM)", ErrInvalidTrade, t.Time)
	}
	if _, err := ParseSide(string(t.Side)); err != nil {
		return err
	}
	if _, err := ParseResult(string(t.Result)); err != nil {
		return err
	}
	if strings.TrimSpace(t.Instrument) == "" {
		return fmt.Errorf("%w: instrument is required", ErrInvalidTrade)
	}
	if math.IsNaN(t.RiskReward) || math.IsInf(t.RiskReward, 0) {
		return fmt.Errorf("%w: risk/reward must be a finite number", ErrInvalidTrade)
	}
	if t.ProfitLoss != nil && (math.IsNaN(*t.ProfitLoss) || math.IsInf(*t.ProfitLoss, 0)) {
		return fmt.Errorf("%w: profit/loss must be a finite number", ErrInvalidTrade)
	}
	return nil
}

// NewTrade validates t, assigns an id when it has none, and applies the
// normalization policy. This is the only place derived fields are rewritten.
func NewTrade(t Trade, p Policy) (Trade, error) {
	t.Instrument = strings.TrimSpace(t.Instrument)
	if s, err := ParseSide(string(t.Side)); err == nil {
		t.Side = s
	}
	if r, err := ParseResult(string(t.Result)); err == nil {
		t.Result = r
	}
	if err := t.Validate(); err != nil {
		return Trade{}, err
	}
	if t.ID == "" {
		t.ID = id.New()
	}
	return p.Apply(t), nil
}

// Store is the persistence collaborator that supplies the raw trade
// collection to the analytics engine.
type Store interface {
	Save(Trade) error
	Get(id string) (Trade, error)
	List() ([]Trade, error)
	Delete(id string) error
	Close() error
}
