// Command cheddactl is a small CLI for poking a Cheddaboards backend: log
// in, submit scores, and read leaderboards from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	cheddaboards "github.com/cheddaboards/cheddaboards-go"
	"github.com/cheddaboards/cheddaboards-go/config"
	"github.com/cheddaboards/cheddaboards-go/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger()
	if err := run(ctx, logger, os.Args[1:]); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func usage() string {
	return `usage: cheddactl <command> [args]

commands:
  login [anonymous|identity|google|apple]
                               log in (default anonymous)
  logout                       log out
  whoami                       show session state and profile
  submit <score> [streak]      submit a score
  nick <nickname>              change nickname
  board [score|streak] [n]     show the leaderboard
  track <event>                track an analytics event`
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		fmt.Println(usage())
		return nil
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	client, err := cheddaboards.New(cheddaboards.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	if err := client.Init(ctx); err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return runLogin(ctx, client, cfg, rest)
	case "logout":
		return client.Logout(ctx)
	case "whoami":
		return runWhoami(client)
	case "submit":
		return runSubmit(ctx, client, rest)
	case "nick":
		return runNick(ctx, client, rest)
	case "board":
		return runBoard(ctx, client, rest)
	case "track":
		return runTrack(ctx, client, rest)
	default:
		fmt.Println(usage())
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, client *cheddaboards.Client, cfg config.Config, args []string) error {
	mode := "anonymous"
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "anonymous":
		if err := client.LoginAnonymous(ctx); err != nil {
			return err
		}
	case "identity":
		if err := client.LoginWithIdentity(ctx); err != nil {
			return err
		}
	case "google", "apple":
		cfg.Auth.OAuth.Provider = mode
		if err := runProviderLogin(ctx, client, cfg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown login mode %q", mode)
	}
	return runWhoami(client)
}

// runProviderLogin walks the OAuth code flow in a terminal: print the
// authorization URL, catch the redirect on a local listener, then hand the
// credential to the client.
func runProviderLogin(ctx context.Context, client *cheddaboards.Client, cfg config.Config) error {
	acquirer, err := cheddaboards.NewProviderAcquirer(ctx, cfg)
	if err != nil {
		return err
	}
	authURL, state, nonce, err := acquirer.Begin(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("open this URL to sign in:\n\n  %s\n\n", authURL)

	code, err := waitForCallback(ctx, cfg.Auth.OAuth.RedirectURL, state)
	if err != nil {
		return err
	}
	cred, err := acquirer.Exchange(ctx, code, state, nonce)
	if err != nil {
		return err
	}
	return client.LoginWithProvider(ctx, cred)
}

// waitForCallback serves the OAuth redirect URL until the provider delivers
// the authorization code, then shuts the listener down.
func waitForCallback(ctx context.Context, redirectURL, state string) (string, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return "", fmt.Errorf("parse redirect URL: %w", err)
	}

	type outcome struct {
		code string
		err  error
	}
	results := make(chan outcome, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(u.Path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- outcome{err: fmt.Errorf("state mismatch in callback")}
			return
		}
		if msg := q.Get("error"); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			results <- outcome{err: fmt.Errorf("provider error: %s", msg)}
			return
		}
		fmt.Fprintln(w, "signed in, you can close this tab")
		results <- outcome{code: q.Get("code")}
	})

	srv := &http.Server{Addr: u.Host, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			results <- outcome{err: serveErr}
		}
	}()
	defer srv.Close()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		return res.code, res.err
	}
}

func runWhoami(client *cheddaboards.Client) error {
	fmt.Printf("state: %s\n", client.State().Kind())
	if !client.IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	if p, ok := client.Profile(); ok {
		fmt.Printf("nickname: %s\nscore: %d\nstreak: %d\nplays: %d\n",
			p.Nickname, p.Score, p.Streak, p.PlayCount)
	}
	return nil
}

func runSubmit(ctx context.Context, client *cheddaboards.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("submit requires a score")
	}
	score, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parse score: %w", err)
	}
	var streak float64
	if len(args) > 1 {
		if streak, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("parse streak: %w", err)
		}
	}

	res := client.SubmitScore(ctx, score, streak)
	if res.Err != nil {
		return res.Err
	}
	fmt.Println(res.Message)
	return nil
}

func runNick(ctx context.Context, client *cheddaboards.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("nick requires a nickname")
	}
	res := client.ChangeNickname(ctx, args[0])
	if res.Err != nil {
		return res.Err
	}
	fmt.Printf("nickname changed to %s\n", res.Message)
	return nil
}

func runBoard(ctx context.Context, client *cheddaboards.Client, args []string) error {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sortBy := cheddaboards.SortByScore
	if fs.NArg() > 0 && fs.Arg(0) == "streak" {
		sortBy = cheddaboards.SortByStreak
	}
	limit := 10
	if fs.NArg() > 1 {
		n, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("parse limit: %w", err)
		}
		limit = n
	}

	entries, err := client.Leaderboard(ctx, sortBy, limit)
	if err != nil {
		return err
	}
	for i, e := range entries {
		fmt.Printf("%2d. %-12s score=%-8d streak=%d\n", i+1, e.Nickname, e.Score, e.Streak)
	}
	return nil
}

func runTrack(ctx context.Context, client *cheddaboards.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("track requires an event type")
	}
	res := client.TrackEvent(ctx, args[0], nil)
	if res.Err != nil {
		return res.Err
	}
	fmt.Println(res.Message)
	return nil
}
