package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives.
type execIface interface {
	isSignedIn() bool
	Status(ctx context.Context) error
	Register(ctx context.Context) error
	SignIn(ctx context.Context) error
	Profile(ctx context.Context) error
	Detect(ctx context.Context, imageURL string) error
	SignOut(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. It returns on
// EOF or on "exit"/"quit". Command errors are reported by the commands
// themselves. Commands read their prompts from the same reader.
//
//	help | status | register | signin | profile | detect <url> | signout | exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sb %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: profile, detect <url>, signout, status, exit")
			} else {
				printlnFn("Available commands: register, signin, status, exit")
			}

		case "status":
			_ = a.Status(ctx)

		case "register":
			_ = a.Register(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "detect":
			if len(args) == 0 {
				printlnFn("Usage: detect <image url>")
				continue
			}
			_ = a.Detect(ctx, args[0])

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
