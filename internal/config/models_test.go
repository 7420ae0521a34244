package config

import (
	"testing"

	"github.com/johanneslochmann/qtorm/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Models(t *testing.T) {
	cfg := Config{
		Driver: "sqlite3",
		Tables: []TableConfig{
			{Name: "books", Fields: []FieldConfig{
				{Name: "title", Type: "string", Size: 120, NotNull: true},
				{Name: "author_id", Type: "int", References: "authors"},
			}},
			{Name: "authors", Fields: []FieldConfig{
				{Name: "code", Type: "int", PrimaryKey: true, AutoIncrement: true},
				{Name: "email", Type: "string", Unique: true},
				{Name: "rating", Type: "double"},
				{Name: "born", Type: "datetime"},
			}},
		},
	}

	models, err := cfg.Models()
	require.NoError(t, err)
	require.Len(t, models, 2)

	books, authors := models[0], models[1]
	assert.Equal(t, "code", authors.PK().Name())
	require.Len(t, books.ForeignKeys(), 1)
	assert.Same(t, authors, books.ForeignKeys()[0].Target())

	got, err := books.CreateTableSQL(orm.SQLite3)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE \"books\" (\n"+
		"    \"id\" INTEGER PRIMARY KEY AUTOINCREMENT,\n"+
		"    \"title\" VARCHAR(120) NOT NULL,\n"+
		"    \"author_id\" INTEGER REFERENCES \"authors\"(\"code\")\n"+
		");", got)

	got, err = authors.CreateTableSQL(orm.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `authors` (\n"+
		"    `code` BIGINT PRIMARY KEY AUTO_INCREMENT,\n"+
		"    `email` VARCHAR(255) UNIQUE,\n"+
		"    `rating` DOUBLE,\n"+
		"    `born` DATETIME\n"+
		");", got)
}

func TestConfig_ModelsReferenceType(t *testing.T) {
	// Models 不依赖 Validate，自己也会拒绝非 int 的外键
	cfg := Config{
		Driver: "sqlite3",
		Tables: []TableConfig{
			{Name: "authors"},
			{Name: "books", Fields: []FieldConfig{{Name: "author", Type: "string", References: "authors"}}},
		},
	}
	_, err := cfg.Models()
	assert.EqualError(t, err, "config: table books: field author: references needs type int")
}
