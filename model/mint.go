package model

const (
	StateMinting = 0
	StateMinted  = 1
	StateWrapped = 2
	StateFailed  = -1
)

// MintOrder is one mint-then-wrap attempt.
type MintOrder struct {
	ID       int64
	RunID    string
	Account  string
	MintTx   string
	TokenID  string
	WrapTx   string
	TokenURI string
	State    int
	Error    string
	Ts       int64
}

func StoreMintOrder(o *MintOrder) error {
	res, err := db.Exec("insert into `mint_order`(`run_id`,`account`,`state`,`ts`) values(?,?,?,?)", o.RunID, o.Account, o.State, o.Ts)
	if err != nil {
		return err
	}
	o.ID, err = res.LastInsertId()
	return err
}

func UpdateMintOrder(o *MintOrder) error {
	_, err := db.Exec("update `mint_order` set `mint_tx`=?, `token_id`=?, `wrap_tx`=?, `token_uri`=?, `state`=? where `run_id`=?", o.MintTx, o.TokenID, o.WrapTx, o.TokenURI, o.State, o.RunID)
	return err
}

// MoveOrderToError keeps the failed attempt in `error_order` with its message.
func MoveOrderToError(o *MintOrder) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err = tx.Exec("delete from `mint_order` where `run_id`=?", o.RunID); err != nil {
		tx.Rollback()
		return err
	}

	if _, err = tx.Exec("insert into `error_order`(`run_id`,`account`,`mint_tx`,`token_id`,`wrap_tx`,`token_uri`,`state`,`error`,`ts`) values(?,?,?,?,?,?,?,?,?)", o.RunID, o.Account, o.MintTx, o.TokenID, o.WrapTx, o.TokenURI, o.State, o.Error, o.Ts); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Journal writes orders through the package connection.
type Journal struct{}

func (Journal) Begin(o *MintOrder) error {
	return StoreMintOrder(o)
}

func (Journal) Update(o *MintOrder) error {
	return UpdateMintOrder(o)
}

func (Journal) Fail(o *MintOrder) error {
	return MoveOrderToError(o)
}

func (Journal) Connected(account, provider string) error {
	return UpdateAccountState(account, provider)
}
