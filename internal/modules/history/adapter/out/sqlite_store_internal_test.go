package out

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
)

// countless* stub a driver that executes statements but cannot report
// affected rows, as drivers implementing the optional Result methods
// with errors do.
type countlessDriver struct{}

func (countlessDriver) Open(string) (driver.Conn, error) { return countlessConn{}, nil }

type countlessConnector struct{}

func (countlessConnector) Connect(context.Context) (driver.Conn, error) { return countlessConn{}, nil }

func (countlessConnector) Driver() driver.Driver { return countlessDriver{} }

type countlessConn struct{}

func (countlessConn) Prepare(string) (driver.Stmt, error) { return countlessStmt{}, nil }

func (countlessConn) Close() error { return nil }

func (countlessConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions unsupported") }

type countlessStmt struct{}

func (countlessStmt) Close() error { return nil }

func (countlessStmt) NumInput() int { return -1 }

func (countlessStmt) Exec([]driver.Value) (driver.Result, error) { return countlessResult{}, nil }

func (countlessStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries unsupported")
}

type countlessResult struct{}

func (countlessResult) LastInsertId() (int64, error) { return 0, errors.New("not supported") }

func (countlessResult) RowsAffected() (int64, error) { return 0, errors.New("not supported") }

func TestDeleteAllSurfacesRowCountFailure(t *testing.T) {
	t.Parallel()
	store := &SQLiteRecordStore{db: sql.OpenDB(countlessConnector{})}
	if _, err := store.DeleteAll(context.Background()); err == nil {
		t.Fatalf("a failed row count must surface as an error, not a zero count")
	}
}
