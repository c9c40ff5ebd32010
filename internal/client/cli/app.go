package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/smartbrain/internal/client/api"
	"github.com/dmitrijs2005/smartbrain/internal/client/config"
)

// apiClient is the part of api.Client the commands use.
type apiClient interface {
	Status(ctx context.Context) (string, error)
	Register(ctx context.Context, email, name, password string) (*api.Profile, error)
	SignIn(ctx context.Context, email, password string) (*api.Profile, error)
	Profile(ctx context.Context, id int64) (*api.Profile, error)
	IncrementEntries(ctx context.Context, id int64) (int64, error)
	Detect(ctx context.Context, imageURL string) (json.RawMessage, error)
}

type App struct {
	config  *config.Config
	api     apiClient
	reader  *bufio.Reader
	out     io.Writer
	profile *api.Profile
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, errors.New("server URL is empty")
	}

	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout, nil),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "SmartBrain CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isSignedIn() bool {
	return a.profile != nil
}

func (a *App) getStatus() string {
	if a.profile == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.profile.Email)
}
