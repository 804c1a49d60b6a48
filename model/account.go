package model

import (
	"database/sql"
	"time"
)

// UpdateAccountState records the last time an account connected and through which provider.
func UpdateAccountState(account, provider string) error {
	_, err := db.Exec("replace into `account`(`account`,`provider`,`ts`) values(?,?,?)", account, provider, time.Now().Unix())
	return err
}

// LastConnected returns the unix time the account was last connected, 0 if never.
func LastConnected(account string) (int64, error) {
	var ts int64
	err := db.QueryRow("select `ts` from `account` where `account`=?", account).Scan(&ts)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return ts, err
}
