package database

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

type tabler interface {
	TableName() string
}

var createTableRe = regexp.MustCompile(`CREATE TABLE IF NOT EXISTS (\w+)`)

// Every model must have a table in the embedded SQL and vice versa, so the
// sql and auto schema modes build the same database.
func TestPersistentModels_MatchEmbeddedSQL(t *testing.T) {
	require.NotEmpty(t, GetMigrations())

	sqlTables := map[string]bool{}
	for _, m := range GetMigrations() {
		for _, match := range createTableRe.FindAllStringSubmatch(m.UpScript, -1) {
			sqlTables[match[1]] = true
		}
	}

	modelTables := map[string]bool{}
	for _, model := range PersistentModels() {
		tm, ok := model.(tabler)
		require.True(t, ok, "%T must declare TableName", model)
		modelTables[tm.TableName()] = true
	}

	assert.Equal(t, sqlTables, modelTables)
}

func TestPersistentModels_NoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, model := range PersistentModels() {
		name := model.(tabler).TableName()
		assert.False(t, seen[name], "duplicate model for table %s", name)
		seen[name] = true
	}
}

func TestMigrations_DownDropsEveryTable(t *testing.T) {
	for _, m := range GetMigrations() {
		for _, match := range createTableRe.FindAllStringSubmatch(m.UpScript, -1) {
			assert.True(t, strings.Contains(m.DownScript, "DROP TABLE IF EXISTS "+match[1]+";"),
				"%s does not drop %s", m.String(), match[1])
		}
	}
}

func TestNamingStrategy_OwnerIndexMatchesSQL(t *testing.T) {
	// AutoMigrate must not create a second index next to the one in the SQL.
	ns := schema.NamingStrategy{}
	assert.Equal(t, "idx_datapage_user_id", ns.IndexName("datapage", "user_id"))
}
