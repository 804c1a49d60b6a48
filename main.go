package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mintwrap/config"
	"mintwrap/daemon"
	"mintwrap/gl"
	"mintwrap/log"
	"mintwrap/model"
	"mintwrap/notify"
	"mintwrap/server"
	"mintwrap/tokens/evm"
	"mintwrap/wallet"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/term"
)

const passphraseEnv = "MINTWRAP_PASSPHRASE"

// usage:
//
//	mintwrap                  serve the page controls in foreground
//	mintwrap -d               serve as a background process
//	mintwrap mint             connect, mint and wrap once
//	mintwrap -key <pwd> <file> create a keystore account for the minter
//
// -c <file> before any of them loads another config file.
func main() {
	args := os.Args[1:]
	if len(args) == 3 && args[0] == "-key" {
		createKeyStore(args[1], args[2])
		return
	}

	confFile, args := confArgs(args)
	config.Load(confFile)

	input()
	if len(args) == 1 && args[0] == "-d" {
		if err := daemon.Background("./out.log"); err != nil {
			log.Panicf("daemon start error. %v", err)
		}
	}

	gl.CreateLogFiles()
	if err := log.ToFile("./logs"); err != nil {
		log.Panicf("create diag log error. %v", err)
	}
	if config.Server.GasLimit > 0 {
		gl.GasLimit = config.Server.GasLimit
	}

	client, err := ethclient.Dial(config.Chain.NodeUrl)
	if err != nil {
		log.Panicf("Dial node error. %s : %v", config.Chain.NodeUrl, err)
	}
	defer client.Close()

	board := &server.Board{}
	reporters := server.Reporters{board}
	if config.Email.Host != "" {
		reporters = append(reporters, notify.NewMailer(config.Email))
	}
	if len(args) == 1 && args[0] == "mint" {
		reporters = append(reporters, console{})
	}

	var journal server.Journal
	if model.Enabled() {
		if err := model.ConnectToMysql(); err != nil {
			log.Panicf("%v", err)
		}
		journal = model.Journal{}
	}

	poll := config.Server.ReceiptPoll * time.Second
	minter := server.NewMinter(server.Config{
		Providers: []wallet.Provider{
			&wallet.KeyStoreProvider{
				File:       config.Wallet.KeyStore,
				Passphrase: passphrase,
				Backend:    client,
				ChainID:    big.NewInt(config.Chain.ChainID),
			},
			wallet.NewRelayProvider(config.Wallet.Relay),
		},
		Mint:     evm.NewMintContract(config.Mint.Contract, config.MintPrice(), client, poll),
		Wrap:     evm.NewWrapContract(config.Wrap.Contract, client, poll),
		URIMode:  config.Wrap.URIMode,
		TokenURI: config.Wrap.TokenURI,
		Reporter: reporters,
		Journal:  journal,
		Explorer: config.Explorer,
	})
	session := &wallet.Session{}
	board.Report(server.Idle, "Wallet Not Connected")

	if len(args) == 1 && args[0] == "mint" {
		os.Exit(mintOnce(minter, session))
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: config.Server.Listen, Handler: server.NewAPI(ctx, minter, session, board)}
	go func() {
		gl.Info("Begin to serve %s", config.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("http server error. %v", err)
		}
	}()

	daemon.WaitForKill()
	cancel()
	shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdown); err != nil {
		gl.Error("http server shutdown error. %v", err)
	}
}

// confArgs takes "-c <file>" out of the arguments.
func confArgs(args []string) (string, []string) {
	confFile := config.DefaultFile
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" && i+1 < len(args) {
			confFile = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return confFile, rest
}

func mintOnce(minter *server.Minter, session *wallet.Session) int {
	ctx := context.Background()
	if _, err := minter.Connect(ctx, session); err != nil {
		return 1
	}
	res, err := minter.MintAndWrap(ctx, session)
	if err != nil {
		return 1
	}
	fmt.Printf("token %s wrapped with %s. mint tx: %s, wrap tx: %s\n", res.TokenID, res.TokenURI, res.MintTx.Hex(), res.WrapTx.Hex())
	return 0
}

type console struct{}

func (console) Report(p server.Phase, msg string) {
	fmt.Printf("[%s] %s\n", p, msg)
}

// input asks for the keystore passphrase before going to background,
// the child process gets it through the environment.
func input() {
	if config.Wallet.KeyStore == "" || config.Wallet.Passphrase != "" || os.Getenv(passphraseEnv) != "" {
		return
	}
	if _, err := os.Stat(config.Wallet.KeyStore); err != nil {
		return
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Printf("input password: ")
	pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Panicf("read password error. %v", err)
	}
	os.Setenv(passphraseEnv, string(pwd))
}

func passphrase() (string, error) {
	if config.Wallet.Passphrase != "" {
		return config.Wallet.Passphrase, nil
	}
	if pwd := os.Getenv(passphraseEnv); pwd != "" {
		return pwd, nil
	}
	return "", fmt.Errorf("keystore passphrase is not set")
}

func createKeyStore(pwd, filename string) {
	ks := keystore.NewKeyStore("./keystores", keystore.StandardScryptN, keystore.StandardScryptP)
	account, err := ks.NewAccount(pwd)
	if err != nil {
		log.Panicf("create account error. %v", err)
	}
	jsonData, err := ks.Export(account, pwd, pwd)
	if err != nil {
		log.Panicf("export account error. %v", err)
	}
	if err := os.MkdirAll("./keystore", 0700); err != nil {
		log.Panicf("create keystore dir error. %v", err)
	}
	if err := os.WriteFile(filepath.Join("./keystore", filename), jsonData, 0600); err != nil {
		log.Panicf("write keystore error. %v", err)
	}
	fmt.Printf("keystore created. %s : %s\n", account.Address.Hex(), filepath.Join("./keystore", filename))
}
