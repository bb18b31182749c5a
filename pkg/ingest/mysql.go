package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"rfm-segment/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

// Open accepts either a native MySQL DSN or a mariadb:// / mysql:// URL
// and returns the pool plus the DSN actually used.
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
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
	return dsn, nil
}

var tableNameRE = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// LoadTransactions reads order rows from the given table. Rows that fail
// the input invariants (empty ids, NULL dates, amount <= 0) are skipped
// with a debug log rather than aborting the load.
func LoadTransactions(ctx context.Context, db *sql.DB, table string, log *zap.SugaredLogger) ([]models.Transaction, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if !tableNameRE.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	q := fmt.Sprintf(`
		SELECT CustomerID, OrderID, OrderDate, Amount
		FROM %s
		WHERE OrderDate IS NOT NULL
	`, table)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	read, skipped := 0, 0
	for rows.Next() {
		read++
		var (
			customerID sql.NullString
			orderID    sql.NullString
			orderDate  sql.NullTime
			amount     sql.NullFloat64
		)
		if err := rows.Scan(&customerID, &orderID, &orderDate, &amount); err != nil {
			return nil, err
		}
		if !customerID.Valid || customerID.String == "" ||
			!orderID.Valid || orderID.String == "" ||
			!orderDate.Valid ||
			!amount.Valid || amount.Float64 <= 0 {
			skipped++
			log.Debugw("skipping invalid row", "customer_id", customerID.String, "order_id", orderID.String)
			continue
		}
		txs = append(txs, models.Transaction{
			CustomerID: customerID.String,
			OrderID:    orderID.String,
			OrderDate:  orderDate.Time,
			Amount:     amount.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Infow("loaded transactions", "table", table, "read", read, "skipped", skipped)
	return txs, nil
}
