// flashkv-cli is an interactive line client for flashkv-server: each
// line typed at the prompt is sent verbatim as one request and the
// server's reply is printed back (spec.md §6).
//
// Usage:
//
//	flashkv-cli [-host <addr>] [-port <n>]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"time"
)

func main() {
	host := flag.String("host", "127.0.0.1", "server host")
	port := flag.Int("port", 6379, "server port")
	flag.Parse()

	addr := fmt.Sprintf("%s:%d", *host, *port)
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	stdinScanner := bufio.NewScanner(os.Stdin)
	buf := make([]byte, 4096)

	fmt.Printf("connected to %s\n", addr)
	for {
		fmt.Print("> ")
		if !stdinScanner.Scan() {
			return
		}
		line := stdinScanner.Text()
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			fmt.Fprintf(os.Stderr, "write error: %v\n", err)
			return
		}
		// A single raw read, the way the source's own client reads one
		// reply: there is no length prefix, so the reply is whatever
		// arrived in the one packet the server flushed.
		n, err := conn.Read(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			return
		}
		fmt.Print(string(buf[:n]))
	}
}
