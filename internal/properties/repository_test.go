package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestOrderImagesUsesUnqualifiedColumn(t *testing.T) {
	db := &gorm.DB{
		Config:    &gorm.Config{},
		Statement: &gorm.Statement{Clauses: map[string]clause.Clause{}},
	}
	tx := orderImages(db)

	orderBy, ok := tx.Statement.Clauses["ORDER BY"].Expression.(clause.OrderBy)
	require.True(t, ok)
	require.Len(t, orderBy.Columns, 1)
	// a qualified name breaks once a table prefix is configured
	assert.Equal(t, "position ASC", orderBy.Columns[0].Column.Name)
}
