package model

import (
	"database/sql"
	"fmt"
	"net"

	"mintwrap/config"

	"github.com/go-sql-driver/mysql"
)

var db *sql.DB

// Enabled reports whether a database is configured, the journal is skipped without one.
func Enabled() bool {
	return config.Db.Host != ""
}

func ConnectToMysql() error {
	c := mysql.NewConfig()
	c.User = config.Db.Usr
	c.Passwd = config.Db.Pwd
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(config.Db.Host, config.Db.Port)
	c.DBName = config.Db.DbName
	c.ParseTime = true

	conn, err := sql.Open("mysql", c.FormatDSN())
	if err != nil {
		return err
	}
	if err = conn.Ping(); nil != err {
		conn.Close()
		return fmt.Errorf("Connect to Mysql error : %v", err)
	}
	db = conn
	return nil
}

// Use sets the connection, for callers which open it themselves.
func Use(conn *sql.DB) {
	db = conn
}

func Ping() error {
	if db == nil {
		return fmt.Errorf("mysql connection is nil")
	}
	if err := db.Ping(); nil != err {
		return fmt.Errorf("connect to Mysql error : %v", err)
	}
	return nil
}
