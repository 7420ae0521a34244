package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
driver: mysql
dsn: root:root@tcp(localhost:13306)/shop
tables:
  - name: authors
    fields:
      - name: name
        type: string
        size: 64
        not_null: true
  - name: books
    fields:
      - name: isbn
        type: string
        primary_key: true
      - name: price
        type: double
      - name: published
        type: datetime
      - name: author_id
        type: int
        references: authors
trace:
  exporter: zipkin
  endpoint: http://localhost:9411/api/v2/spans
`

// memFs 替换成内存文件系统，测试结束之后恢复
func memFs(t *testing.T, files map[string]string) {
	old := AppFs
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	AppFs = fs
	t.Cleanup(func() {
		AppFs = old
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	memFs(t, map[string]string{".qtorm.yaml": testYAML})

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, "root:root@tcp(localhost:13306)/shop", cfg.DSN)
	require.Len(t, cfg.Tables, 2)
	assert.Equal(t, FieldConfig{Name: "name", Type: "string", Size: 64, NotNull: true}, cfg.Tables[0].Fields[0])
	assert.Equal(t, "authors", cfg.Tables[1].Fields[3].References)
	assert.Equal(t, TraceConfig{
		Exporter:    "zipkin",
		Endpoint:    "http://localhost:9411/api/v2/spans",
		ServiceName: "qtorm",
	}, cfg.Trace)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("QTORM_DRIVER", "postgres")
	t.Setenv("QTORM_TRACE_EXPORTER", "jaeger")
	memFs(t, map[string]string{".qtorm.yaml": testYAML})

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "jaeger", cfg.Trace.Exporter)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("QTORM_DSN", "")
	// t.Setenv 负责在测试结束之后恢复
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	memFs(t, map[string]string{
		".env": "DATABASE_URL=postgres://localhost/shop\n",
	})

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	// 没有配置文件，使用默认值
	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Equal(t, "postgres://localhost/shop", cfg.DSN)
	assert.Empty(t, cfg.Tables)
}

func TestLoad_ExplicitPath(t *testing.T) {
	memFs(t, map[string]string{"conf/schema.yaml": testYAML})

	cfg, err := Load(New(), "conf/schema.yaml")
	require.NoError(t, err)
	assert.Len(t, cfg.Tables, 2)

	_, err = Load(New(), "conf/missing.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{Driver: "sqlite3", Tables: []TableConfig{
				{Name: "users", Fields: []FieldConfig{{Name: "name", Type: "string"}}},
			}},
		},
		{
			name:    "no driver",
			cfg:     Config{},
			wantErr: "config: driver is required",
		},
		{
			name: "duplicate table",
			cfg: Config{Driver: "sqlite3", Tables: []TableConfig{
				{Name: "users"}, {Name: "users"},
			}},
			wantErr: "config: duplicate table users",
		},
		{
			name: "unknown type",
			cfg: Config{Driver: "sqlite3", Tables: []TableConfig{
				{Name: "users", Fields: []FieldConfig{{Name: "name", Type: "blob"}}},
			}},
			wantErr: `config: table users: field name: unknown type "blob"`,
		},
		{
			name: "duplicate field",
			cfg: Config{Driver: "sqlite3", Tables: []TableConfig{
				{Name: "users", Fields: []FieldConfig{{Name: "a", Type: "int"}, {Name: "a", Type: "int"}}},
			}},
			wantErr: "config: table users: duplicate field a",
		},
		{
			name: "unknown reference",
			cfg: Config{Driver: "sqlite3", Tables: []TableConfig{
				{Name: "books", Fields: []FieldConfig{{Name: "author_id", Type: "int", References: "authors"}}},
			}},
			wantErr: "config: table books: field author_id: unknown table authors",
		},
		{
			name: "string reference",
			cfg: Config{Driver: "sqlite3", Tables: []TableConfig{
				{Name: "authors"},
				{Name: "books", Fields: []FieldConfig{{Name: "author", Type: "string", References: "authors"}}},
			}},
			wantErr: "config: table books: field author: references needs type int",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
