package discrepancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeamanwal/brysk/internal/database"
	"github.com/codeamanwal/brysk/internal/repository"
)

func TestReadingsQueriesScalesTable(t *testing.T) {
	repo := NewRepository(repository.NewRepository(&database.Sources{}))

	sql, _, err := repo.readingsDataset().ToSQL()
	assert.NoError(t, err)
	assert.Contains(t, sql, `FROM "Scales"`)
	assert.Contains(t, sql, `"currentWeight"`)
	assert.Contains(t, sql, `"updatedAt"`)
}
