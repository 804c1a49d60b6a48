package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"
)

// envName marks the re-executed child so it doesn't fork again.
const envName = "MINTWRAP_DAEMON"

// Background re-runs the process detached from the terminal with its output in logFile,
// and exits the parent. In the child it returns at once.
func Background(logFile string) error {
	if os.Getenv(envName) == "1" {
		return nil
	}

	cmd := &exec.Cmd{
		Path:        os.Args[0],
		Args:        os.Args,
		Env:         append(os.Environ(), envName+"=1"),
		SysProcAttr: &syscall.SysProcAttr{Setsid: true},
	}
	if logFile != "" {
		out, err := os.OpenFile(logFile, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
		if err != nil {
			return fmt.Errorf("open log file error. %s : %v", logFile, err)
		}
		cmd.Stdout = out
		cmd.Stderr = out
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	fmt.Printf("process start success! pid: %d\n", cmd.Process.Pid)
	os.Exit(0)
	return nil
}

// WaitForKill blocks until SIGINT or SIGTERM, leaving process.pid and stop.sh behind while it runs.
func WaitForKill() {
	if pid := os.Getpid(); pid != 1 {
		os.WriteFile("process.pid", []byte(strconv.Itoa(pid)), 0666)
		os.WriteFile("stop.sh", []byte("kill `cat process.pid`"), 0777)
		defer os.Remove("process.pid")
		defer os.Remove("stop.sh")
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	fmt.Printf("process stop. %v : %d \n", s, os.Getpid())
}
