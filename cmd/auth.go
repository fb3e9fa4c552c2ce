package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// credentials pulls the username argument and password flag, prompting on
// stdin when the password was omitted.
func (r *Runner) credentials(cmd *cli.Command) (string, string, error) {
	username := strings.TrimSpace(cmd.StringArg("username"))
	if username == "" {
		return "", "", fmt.Errorf("%w: username argument is required", shared.ErrMissingArgument)
	}

	password := cmd.String("password")
	if password == "" {
		r.writePlain("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		return "", "", fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}

	return username, password, nil
}

// AuthRegister creates a new account on the backend.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username, password, err := r.credentials(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("registering account %v", username)

	if err := r.backend.Register(ctx, username, password); err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s\n", username)
	r.writePlain("Sign in with: badplay auth login %s\n", username)
	return nil
}

// AuthLogin signs in and keeps the session cookie in local storage, so later
// invocations stay authenticated the way a browser would.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username, password, err := r.credentials(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("signing in as %v", username)

	name, err := r.backend.Login(ctx, username, password)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Signed in as %s\n", name)
}

// AuthLogout ends the backend session. The stored cookie is replaced by the
// backend's expiring Set-Cookie on the response.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("signing out")

	if err := r.backend.Logout(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Signed out\n")
}
