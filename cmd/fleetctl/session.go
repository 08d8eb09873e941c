package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/auth"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (read from stdin when omitted)")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if *username == "" && len(positional) > 0 {
		*username = positional[0]
	}

	scanner := bufio.NewScanner(a.in)
	if *username == "" {
		fmt.Fprint(a.out, "Username: ")
		if scanner.Scan() {
			*username = strings.TrimSpace(scanner.Text())
		}
	}
	if *password == "" {
		fmt.Fprint(a.out, "Password: ")
		if scanner.Scan() {
			*password = strings.TrimSpace(scanner.Text())
		}
	}

	user, err := a.auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	name := user.Name
	if name == "" {
		name = user.Username
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", name)
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, args []string) error {
	s, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	if s.User != nil {
		fmt.Fprintf(a.out, "User:     %s\n", s.User.Username)
		if s.User.Name != "" {
			fmt.Fprintf(a.out, "Name:     %s\n", s.User.Name)
		}
	}
	fmt.Fprintf(a.out, "Server:   %s\n", a.cfg.APIURL)

	info, err := auth.InspectToken(s.Token)
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		a.logger.Debug("Session token is not a JWT")
	case err != nil:
		return err
	case !info.ExpiresAt.IsZero():
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Expires:  %s (%s)\n", info.ExpiresAt.Local().Format("02/01/2006 15:04"), state)
	}
	return nil
}
