package odds

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidQuery = errors.New("invalid odds query")
	ErrInvalidInput = errors.New("input is not a number")
)

const (
	MinTargetOdds = 1.1
	MinTolerance  = 0.1
)

// Query selects catalog options priced within Tolerance of TargetOdds.
// Empty Sports or Bookmakers means no filter on that field.
type Query struct {
	TargetOdds float64  `json:"target_odds" validate:"gte=1.1"`
	Tolerance  float64  `json:"tolerance" validate:"gte=0.1"`
	Sports     []string `json:"sports,omitempty"`
	Bookmakers []string `json:"bookmakers,omitempty"`
}

// Match is a search hit.
type Match struct {
	BettingOption
	Distance           float64 `json:"distance"`
	ImpliedProbability float64 `json:"implied_probability"`
}

var validate = validator.New()

// Validate checks the query bounds.
func (q Query) Validate() error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.StructField() {
		case "TargetOdds":
			msgs = append(msgs, fmt.Sprintf("target odds must be at least %.1f", MinTargetOdds))
		case "Tolerance":
			msgs = append(msgs, fmt.Sprintf("tolerance must be at least %.1f", MinTolerance))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.StructField(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidQuery, strings.Join(msgs, "; "))
}

// Search returns the options matching q, closest price first. Ties keep
// catalog order.
func (c *Catalog) Search(q Query) ([]Match, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	sports := toSet(q.Sports)
	bookmakers := toSet(q.Bookmakers)

	matches := make([]Match, 0)
	for _, o := range c.options {
		distance := o.Distance(q.TargetOdds)
		if distance > q.Tolerance {
			continue
		}
		if len(sports) > 0 && !sports[o.Sport] {
			continue
		}
		if len(bookmakers) > 0 && !bookmakers[o.Bookmaker] {
			continue
		}
		matches = append(matches, Match{
			BettingOption:      o,
			Distance:           distance,
			ImpliedProbability: o.ImpliedProbability(),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// ParseOddsInput reads a number from free-form user input. Everything but
// digits and '.' is dropped, and parsing stops at a second '.'.
func ParseOddsInput(input string) (float64, error) {
	var b strings.Builder
	dots := 0
scan:
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			dots++
			if dots > 1 {
				break scan
			}
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSuffix(b.String(), ".")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	return value, nil
}
