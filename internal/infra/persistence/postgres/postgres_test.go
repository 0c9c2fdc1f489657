package postgres

import (
	"testing"

	"finance/config"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionSettings(t *testing.T) {
	cfg := &config.PostgresConfig{
		DBConn: pgLib.DBConn{
			Master:   pgLib.ConnectionConfig{Host: "localhost", Port: "5432", UserName: "postgres", Password: `p'a\ss`},
			Replicas: []pgLib.ConnectionConfig{{Host: "replica-0", Port: "5433", UserName: "reader", Password: ""}},
			Database: "finance",
			SSLMode:  "disable",
		},
	}

	conn := connectionSettings(cfg)

	assert.Equal(t,
		`host=localhost port=5432 user=postgres password='p\'a\\ss' dbname=finance sslmode=disable search_path=public`,
		conn.Master.DSN(conn),
	)
	require.Len(t, conn.Replicas, 1)
	assert.Equal(t,
		`host=replica-0 port=5433 user=reader password='' dbname=finance sslmode=disable search_path=public`,
		conn.Replicas[0].DSN(conn),
	)

	assert.Equal(t, `p'a\ss`, cfg.Master.Password)
	assert.Empty(t, cfg.Replicas[0].Password)
}

func TestQuoteDSNValue(t *testing.T) {
	assert.Equal(t, `''`, quoteDSNValue(""))
	assert.Equal(t, `'with space'`, quoteDSNValue("with space"))
	assert.Equal(t, `'\'\\'`, quoteDSNValue(`'\`))
}
