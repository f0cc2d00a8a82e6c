package testutil

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
)

const mariaDBRootPassword = "root"

// MariaDBContainerInfo points at a throwaway MariaDB. DSN targets the mysql
// schema; SetupTestDB derives a fresh database from it.
type MariaDBContainerInfo struct {
	DSN     string
	Cleanup func()
}

func mariaDBDSN(addr string) string {
	return fmt.Sprintf("root:%s@(%s)/mysql?parseTime=true", mariaDBRootPassword, addr)
}

func StartMariaDBContainer() (*MariaDBContainerInfo, error) {
	c, err := runContainer("mariadb", "3306/tcp",
		&dockertest.RunOptions{
			Repository: "mariadb",
			Tag:        "10.11",
			Env:        []string{"MARIADB_ROOT_PASSWORD=" + mariaDBRootPassword},
		},
		func(ctx context.Context, addr string) error {
			db, err := sql.Open("mysql", mariaDBDSN(addr))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			return db.PingContext(ctx)
		})
	if err != nil {
		return nil, err
	}
	return &MariaDBContainerInfo{DSN: mariaDBDSN(c.addr), Cleanup: c.purge}, nil
}
