package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/jetwong/betbook/remote"
)

type loginCmd struct {
	username string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in to the bets service and store the session" }
func (*loginCmd) Usage() string {
	return `btb login [-u <username>] [-p <password>]

  Exchanges credentials for a session token and stores it for the other
  commands. Credentials are prompted for when not given as flags.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.password, "p", "", "Password")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reader := bufio.NewReader(os.Stdin)
	if c.username == "" {
		fmt.Print("username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading username: %v\n", err)
			return subcommands.ExitFailure
		}
		c.username = strings.TrimSpace(line)
	}
	if c.password == "" {
		fmt.Print("password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			return subcommands.ExitFailure
		}
		c.password = strings.TrimSpace(line)
	}

	token, err := remote.Login(ctx, *baseURL, c.username, c.password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := remote.SaveToken(token); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot store session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Logged in.")
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "forget the stored session" }
func (*logoutCmd) Usage() string            { return "btb logout\n" }
func (*logoutCmd) SetFlags(_ *flag.FlagSet) {}

func (*logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := remote.ClearToken(); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot clear session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Logged out.")
	return subcommands.ExitSuccess
}
