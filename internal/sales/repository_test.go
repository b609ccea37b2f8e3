package sales

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
)

func TestOrderedWithinMatchesTheReceivedWindow(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	sql, _, err := goqu.Dialect("postgres").
		From(goqu.T("Orders").As("o")).
		Where(orderedWithin(start, end)).
		ToSQL()
	assert.NoError(t, err)

	// Same half-open calendar-day window as the ledger's received side.
	assert.Contains(t, sql, `"orderAt" >= `)
	assert.Contains(t, sql, `"orderAt" < `)
	assert.Contains(t, sql, "2024-03-01")
	assert.Contains(t, sql, "2024-03-08")
	assert.NotContains(t, sql, "BETWEEN")
}
