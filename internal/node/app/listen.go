package app

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

var ErrNoFreePort = errors.New("no free port")

// bindFirstFree binds the first free TCP port in [basePort, basePort+attempts)
// on host and returns the listener and the bound port.
func bindFirstFree(host string, basePort, attempts int) (net.Listener, int, error) {
	attempts = max(attempts, 1)

	var lastErr error
	for p := basePort; p < basePort+attempts; p++ {
		lis, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(p)))
		if err == nil {
			return lis, p, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("%w in [%d, %d): %v", ErrNoFreePort, basePort, basePort+attempts, lastErr)
}
