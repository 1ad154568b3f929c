package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
)

// Prints a bcrypt hash suitable for admin_users.password_hash. The password is
// read from stdin so it does not end up in shell history.
func main() {
	minLen := flag.Int("min-length", 12, "minimum password length")
	flag.Parse()

	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "read password:", err)
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")

	if len(password) < *minLen {
		fmt.Fprintf(os.Stderr, "password must be at least %d characters\n", *minLen)
		os.Exit(1)
	}

	hash, err := authsvc.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
