package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/scoreclient"
)

var flagEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to a portal and print a bearer token",
	Long: `Log in to a running portal and print a token for remote scores.

The password is read from the terminal without echo.

Examples:
  export ARCADE_TOKEN=$(arcade login --portal http://localhost:8080 --email ann@example.com)
  arcade play snake --portal http://localhost:8080`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
}

func runLogin(_ *cobra.Command, _ []string) error {
	if flagPortalURL == "" || flagEmail == "" {
		return errors.New("login needs --portal and --email")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := scoreclient.Login(ctx, flagPortalURL, flagEmail, strings.TrimRight(string(raw), "\r\n"))
	if err != nil {
		return err
	}
	fmt.Println(client.Token())
	return nil
}
