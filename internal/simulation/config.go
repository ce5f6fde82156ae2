package simulation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultTrials is used when Config.NumTrials is left at zero.
const DefaultTrials = 1000

// DefaultBins is the number of equal-width histogram bins.
const DefaultBins = 10

// BinRule selects how the histogram treats the upper edge of the last bin.
type BinRule string

const (
	// BinRuleInclusiveMax closes the last bin on the right so every trial is counted.
	BinRuleInclusiveMax BinRule = "inclusive_max"
	// BinRuleHalfOpen uses [lo, hi) for every bin. Trials ending exactly on
	// the maximum fall outside all bins.
	BinRuleHalfOpen BinRule = "half_open"
)

// Config describes one simulation run. It is treated as immutable once Run starts.
type Config struct {
	InitialBankroll float64 `json:"initial_bankroll" validate:"finite,gt=0"`
	BetAmount       float64 `json:"bet_amount" validate:"finite,gt=0,ltefield=InitialBankroll"`
	Odds            float64 `json:"odds" validate:"finite,gt=1"`
	WinProbability  float64 `json:"win_probability" validate:"finite,gt=0,lt=1"`
	NumBets         int     `json:"num_bets" validate:"gte=1"`
	NumTrials       int     `json:"num_trials" validate:"gte=0"`
	BinRule         BinRule `json:"bin_rule,omitempty" validate:"omitempty,oneof=inclusive_max half_open"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", validateFinite)
	return v
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfiguration describing every offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fmt.Errorf("%w:\n%s", ErrInvalidConfiguration, formatValidationErrors(validationErrors))
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
}

// withDefaults fills zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.NumTrials == 0 {
		c.NumTrials = DefaultTrials
	}
	if c.BinRule == "" {
		c.BinRule = BinRuleInclusiveMax
	}
	return c
}

// ProfitPerWin returns the profit credited by a winning bet.
func (c Config) ProfitPerWin() float64 {
	return c.BetAmount * (c.Odds - 1)
}

func formatValidationErrors(validationErrors validator.ValidationErrors) string {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "finite":
			fmt.Fprintf(&b, "- %s must be a finite number\n", field)
		case "gt":
			fmt.Fprintf(&b, "- %s must be greater than %s, got %v\n", field, fieldError.Param(), fieldError.Value())
		case "lt":
			fmt.Fprintf(&b, "- %s must be less than %s, got %v\n", field, fieldError.Param(), fieldError.Value())
		case "gte":
			fmt.Fprintf(&b, "- %s must be at least %s, got %v\n", field, fieldError.Param(), fieldError.Value())
		case "ltefield":
			fmt.Fprintf(&b, "- %s must not exceed initial_bankroll, got %v\n", field, fieldError.Value())
		case "oneof":
			fmt.Fprintf(&b, "- %s must be one of: %s\n", field, fieldError.Param())
		default:
			fmt.Fprintf(&b, "- %s failed validation: %s\n", field, fieldError.Tag())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
