package cli

// Package cli is the operator console: an interactive shell over the session
// core and the data access client. It is a consumer of the core in the same
// position an entity screen would be; it owns no session state of its own.

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/internlink/console/config"
	"github.com/internlink/console/internal/api"
	"github.com/internlink/console/internal/bootstrap"
	"github.com/internlink/console/internal/ports"
	"github.com/internlink/console/internal/service"
)

// App wires the session core, data access client, and file store behind an
// interactive prompt.
type App struct {
	cfg     config.AppConfig
	logger  *slog.Logger
	session *service.SessionManager
	api     *api.Client
	files   ports.FileStore

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the console from configuration.
func NewApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	provider, err := bootstrap.BuildCredentialProvider(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("build credential provider: %w", err)
	}

	profiles := bootstrap.BuildProfileStore(cfg.Profiles)

	apiClient, err := bootstrap.BuildAPIClient(cfg.API, provider)
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	session := service.NewSessionManager(service.SessionManagerOptions{
		Provider:       provider,
		Profiles:       profiles,
		Logger:         logger,
		BootstrapAdmin: cfg.Auth.BootstrapAdmin,
	})

	return &App{
		cfg:     cfg,
		logger:  logger,
		session: session,
		api:     apiClient,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// fileStore lazily connects the S3 store; most sessions never touch files.
func (a *App) fileStore(ctx context.Context) (ports.FileStore, error) {
	if a.files != nil {
		return a.files, nil
	}
	store, err := bootstrap.BuildFileStore(ctx, a.cfg.Storage)
	if err != nil {
		return nil, err
	}
	a.files = store
	return store, nil
}

// Run starts session observation and the prompt loop.
func (a *App) Run(ctx context.Context) error {
	a.session.Start(ctx)
	defer a.session.Close()

	fmt.Fprintln(a.out, "internlink console (type 'help' for commands)")
	for {
		line, err := promptLine(a.reader, a.prompt(), a.out)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		if cmd == "exit" || cmd == "quit" {
			return nil
		}
		if runErr := a.dispatch(ctx, cmd, args); runErr != nil {
			fmt.Fprintln(a.out, "error:", runErr)
		}
	}
}

func (a *App) prompt() string {
	snap := a.session.Current()
	if snap.Loading {
		return "console (loading) > "
	}
	if snap.Identity == nil {
		return "console > "
	}
	return fmt.Sprintf("console %s [%s] > ", snap.Identity.Email, snap.Identity.Role)
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "login":
		return a.runLogin(ctx)
	case "register":
		return a.runRegister(ctx)
	case "logout":
		return a.runLogout(ctx)
	case "whoami":
		return a.runWhoami()
	case "dashboard":
		return a.runDashboard(ctx)
	case "companies":
		return a.runCompanies(ctx)
	case "students":
		return a.runStudents(ctx, args)
	case "internships":
		return a.runInternships(ctx)
	case "applications":
		return a.runApplications(ctx, args)
	case "enrollments":
		return a.runEnrollments(ctx)
	case "admins":
		return a.runAdmins(ctx)
	case "upload":
		return a.runUpload(ctx, args)
	case "url":
		return a.runDownloadURL(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  login                       sign in with email and password
  register                    create an administrator account
  logout                      sign out
  whoami                      show the current identity
  dashboard                   show dashboard statistics
  companies                   list companies
  students [minimal]          list students
  internships                 list internship postings
  applications [set-status <id> <status>]
                              list applications or update one's status
  enrollments                 list enrollments
  admins                      list administrator records
  upload <local> <remote>     upload a file asset
  url <remote>                print a download URL for a file asset
  exit                        leave the console
`)
}

// guard gates a screen the way a navigation would be gated: loading waits,
// signed-out and wrong-role navigations are redirected instead of rendered.
func (a *App) guard(route service.Route) error {
	required, protected := service.GuardRules()[route]
	if !protected {
		return nil
	}
	switch decision := service.Decide(a.session.Current(), required); decision.Outcome {
	case service.OutcomeLoading:
		return fmt.Errorf("session still loading, try again")
	case service.OutcomeRedirect:
		return fmt.Errorf("not authorized for %s (redirecting to %s)", route, decision.Target)
	default:
		return nil
	}
}
