package main

import (
	"fmt"
	"net"
	"runtime"
)

// runtimeGOMAXPROCS forwards the server config's async_threads knob to
// the Go scheduler; see SPEC_FULL.md §5 on why this is accepted but not
// otherwise load-bearing.
func runtimeGOMAXPROCS(n int) {
	runtime.GOMAXPROCS(n)
}

func listenTCP(bind string, port int) (net.Listener, error) {
	return net.Listen("tcp", fmt.Sprintf("%s:%d", bind, port))
}
