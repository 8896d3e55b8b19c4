package commands

import (
	"context"
	"fmt"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password" env:"CLAIMS_PASSWORD" required:""`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	sess := globals.session()
	client, err := globals.client(sess)
	if err != nil {
		return err
	}

	raw, err := client.Login(ctx, l.Email, l.Password)
	if err != nil {
		return explain("login failed", err)
	}
	if err := sess.Login(raw); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	id, _ := sess.Identity()
	fmt.Fprintf(globals.Out, "Logged in as %s (%s)\n", id.Subject, id.Role)
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(globals *Globals) error {
	globals.session().Logout()
	fmt.Fprintln(globals.Out, "Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(globals *Globals) error {
	id, ok := globals.session().Identity()
	if !ok {
		return ErrNotLoggedIn
	}
	fmt.Fprintf(globals.Out, "%s (%s)\n", id.Subject, id.Role)
	return nil
}
