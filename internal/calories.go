package internal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const stopEatingMessage = "Stop eating!"

// CaloriesCalculator tracks eaten calories against a daily limit.
type CaloriesCalculator struct {
	*Calculator
}

func NewCaloriesCalculator(limit decimal.Decimal, opts ...Option) *CaloriesCalculator {
	return &CaloriesCalculator{Calculator: NewCalculator(limit, opts...)}
}

// CaloriesRemained tells how many calories may still be eaten today.
func (c *CaloriesCalculator) CaloriesRemained() string {
	remaining := c.Remaining()
	if remaining.IsPositive() {
		return fmt.Sprintf("You can eat something else today, but with a total calorie value of no more than %s kcal", remaining)
	}
	return stopEatingMessage
}
