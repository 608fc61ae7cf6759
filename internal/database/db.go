package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// connConfig builds the driver config for the reservation database.
// All DATETIME columns hold UTC; ParseTime plus Loc=UTC makes the
// driver hand them back as UTC time.Time values.
func connConfig(user, pass, host, port, name string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// Open builds the MySQL pool shared by every repository and verifies
// connectivity before returning it.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", connConfig(user, pass, host, port, name).FormatDSN())
	if err != nil {
		return nil, err
	}

	// Seat submissions hold row locks briefly; a modest pool is enough
	// and keeps the lock queue short under bursts.
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
