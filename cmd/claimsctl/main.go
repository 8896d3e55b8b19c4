package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FACorreiaa/go-claims-templui/cmd/claimsctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login   commands.LoginCmd  `cmd:"" help:"Sign in and store the credential locally"`
		Logout  commands.LogoutCmd `cmd:"" help:"Remove the stored credential"`
		Whoami  commands.WhoamiCmd `cmd:"" help:"Show the signed-in user"`
		Claims  commands.ClaimsCmd `cmd:"" help:"Work with your claims"`
		Admin   commands.AdminCmd  `cmd:"" help:"Review claims as an administrator"`
		Server  string             `help:"Claims backend URL" default:"http://localhost:8080" env:"BACKEND_BASE_URL"`
		Creds   string             `name:"credentials" help:"Credential file" default:"${credentials}" type:"path"`
		Role    string             `name:"admin-role" help:"Role authority that marks an administrator" default:"ROLE_ADMIN" env:"AUTH_ADMIN_ROLE"`
		Timeout time.Duration      `help:"Backend request timeout" default:"60s" env:"BACKEND_TIMEOUT"`
		Debug   bool               `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func defaultCredentialPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "claimsctl", "credential")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("claimsctl"),
		kong.Description("Command line client for the vehicle damage claims service."),
		kong.Vars{
			"version":     version,
			"credentials": defaultCredentialPath(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Debug:          cli.Debug,
		Version:        version,
		Server:         cli.Server,
		CredentialPath: cli.Creds,
		AdminRole:      cli.Role,
		Timeout:        cli.Timeout,
		Out:            os.Stdout,
	})
	cmd.FatalIfErrorf(err)
}
