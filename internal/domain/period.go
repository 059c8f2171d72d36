package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePeriod pads a period identifier with leading zeros to
// PeriodWidth. "1234" and "01234" are the same logical period; the
// normalized form is the only one that reaches the store.
func NormalizePeriod(period string) string {
	period = strings.TrimSpace(period)
	if n, err := strconv.Atoi(period); err == nil {
		return fmt.Sprintf("%0*d", PeriodWidth, n)
	}
	return period
}

// NextPeriod returns the identifier of the period following the given
// one. Non-numeric identifiers fall back to a sentinel suffix so an
// ingestion cycle never fails on an unexpected period format.
func NextPeriod(period string) string {
	n, err := strconv.Atoi(strings.TrimSpace(period))
	if err != nil {
		return period + "_next"
	}
	return fmt.Sprintf("%0*d", PeriodWidth, n+1)
}
