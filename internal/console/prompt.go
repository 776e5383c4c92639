package console

import (
	"fmt"
	"strconv"
	"time"

	"github.com/govalues/decimal"
	"github.com/govalues/money"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
)

func (c *Console) promptDecimal(label string) (decimal.Decimal, error) {
	s, err := c.readLine(label + ": ")
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s %q is not a number: %w", label, s, errs.ErrInvalid)
	}
	return d, nil
}

func (c *Console) promptTime(label string) (time.Time, error) {
	s, err := c.readLine(label + " (dd.MM.yyyy HH:mm:ss): ")
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: expected dd.MM.yyyy HH:mm:ss: %w", label, s, errs.ErrInvalid)
	}
	return t, nil
}

// promptType accepts INCOME/EXPENSE in any case, or 1/2.
func (c *Console) promptType() (ledger.Type, error) {
	s, err := c.readLine("Type (1 = INCOME, 2 = EXPENSE): ")
	if err != nil {
		return "", err
	}
	switch s {
	case "1":
		return ledger.TypeIncome, nil
	case "2":
		return ledger.TypeExpense, nil
	}
	return ledger.ParseType(s)
}

// choose lists n items and returns the zero-based index picked.
func (c *Console) choose(label string, n int, item func(i int) string) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("no %s yet: %w", label, errs.ErrNotFound)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(c.out, "%2d) %s\n", i+1, item(i))
	}
	s, err := c.readLine(fmt.Sprintf("Select %s (1..%d): ", label, n))
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 1 || idx > n {
		return 0, fmt.Errorf("invalid choice %q: %w", s, errs.ErrInvalid)
	}
	return idx - 1, nil
}

// money renders d in the display currency, falling back to the bare number.
func (c *Console) money(d decimal.Decimal) string {
	a, err := money.ParseAmount(c.currency, d.String())
	if err != nil {
		return d.String()
	}
	return a.String()
}
