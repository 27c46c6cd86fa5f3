package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

const (
	driverMySQL    = "mysql"
	driverPostgres = "postgres"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb://, mysql:// or postgres:// → driver name and native DSN.
// Anything else is handed to the MySQL driver as is.
func Open(ctx context.Context, dsn string) (*sql.DB, string, error) {
	driver, nativeDSN, err := toDriverDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, nativeDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, driver, nil
}

func toDriverDSN(dsn string) (string, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return driverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "mariadb://"), strings.HasPrefix(dsn, "mysql://"):
		native, err := toMySQLDSN(dsn)
		return driverMySQL, native, err
	default:
		return driverMySQL, dsn, nil
	}
}

func toMySQLDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pw, _ := u.User.Password()
		pass = pw
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("incomplete dsn (user/host/db)")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

func quoteIdent(driver, name string) (string, error) {
	if !identifierRe.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	if driver == driverPostgres {
		return `"` + name + `"`, nil
	}
	return "`" + name + "`", nil
}

// LoadTable reads the mapped transaction columns of tableName.
// NULL cells become empty strings; timestamps come back as RFC 3339 text.
func LoadTable(ctx context.Context, db *sql.DB, driver, tableName string, fields models.FieldMap) (models.RawTable, error) {
	header := []string{fields.CustomerID, fields.InvoiceID, fields.InvoiceDate, fields.Quantity, fields.UnitPrice}

	table, err := quoteIdent(driver, tableName)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("table: %w", err)
	}
	cols := make([]string, len(header))
	for i, name := range header {
		if cols[i], err = quoteIdent(driver, name); err != nil {
			return models.RawTable{}, fmt.Errorf("column: %w", err)
		}
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
	logger.Log.Debugf("load query: %s", q)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return models.RawTable{}, err
	}
	defer rows.Close()

	out := models.RawTable{Header: header}
	vals := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return models.RawTable{}, err
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = v.String
		}
		out.Rows = append(out.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return models.RawTable{}, err
	}

	logger.Log.Debugf("loaded %d rows from %s", len(out.Rows), tableName)
	return out, nil
}
