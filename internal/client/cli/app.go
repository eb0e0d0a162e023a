// Package cli is an interactive shell over the mtmt HTTP API: sign up, log
// in, inspect the current principal and log out.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/mtmt/internal/client/client"
	"github.com/dmitrijs2005/mtmt/internal/client/config"
)

type App struct {
	config   *config.Config
	api      client.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.userName == "" || !a.isLoggedIn() {
		return ""
	}
	return "(" + a.userName + ")"
}

func (a *App) Run(ctx context.Context) {
	if err := a.api.Ping(ctx); err != nil {
		printlnFn("Server is not reachable:", err)
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}
