package proc

import (
	"fmt"
	"strings"
	"syscall"
)

var signalNames = map[string]syscall.Signal{
	"TERM": syscall.SIGTERM,
	"INT":  syscall.SIGINT,
	"HUP":  syscall.SIGHUP,
	"KILL": syscall.SIGKILL,
	"QUIT": syscall.SIGQUIT,
}

// ParseSignal accepts "TERM", "SIGTERM" or "term".
func ParseSignal(name string) (syscall.Signal, error) {
	key := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "SIG")
	sig, ok := signalNames[key]
	if !ok {
		return 0, fmt.Errorf("unsupported signal %q", name)
	}
	return sig, nil
}
