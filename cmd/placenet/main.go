package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/nishantpatil/placenet/internal/browser"
	"github.com/nishantpatil/placenet/internal/config"
	"github.com/nishantpatil/placenet/internal/realtime"
	"github.com/nishantpatil/placenet/internal/session"
	"github.com/nishantpatil/placenet/internal/tui"
	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("placenet %s\n", version)
			return nil
		case "help", "--help", "-h":
			printUsage()
			return nil
		case "login":
			return runLogin(cfg, args[1:])
		case "logout":
			return runLogout(cfg)
		default:
			return fmt.Errorf("unknown command %q, run 'placenet help'", args[0])
		}
	}
	return runTUI(cfg)
}

func printUsage() {
	fmt.Print(`placenet - campus placement portal

usage:
  placenet            open the portal
  placenet login      sign in with google (or --face with a descriptor file)
  placenet logout     sign out and clear the local session
  placenet version    print the version

environment:
  PLACENET_API_URL       portal server (default http://localhost:5000)
  PLACENET_SOCKET_URL    realtime endpoint (default derived from the api url)
  PLACENET_DATA_DIR      session cache directory (default ~/.placenet)
`)
}

// socketURL derives the realtime endpoint when none is configured.
func socketURL(cfg config.Config) string {
	if cfg.SocketURL != "" {
		return cfg.SocketURL
	}
	u := cfg.APIURL
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + "/ws"
}

func runTUI(cfg config.Config) error {
	c := client.New(cfg.APIURL)
	if err := c.LoadCookies(cfg.CookiePath()); err != nil {
		log.Printf("cookie restore failed: %v", err)
	}
	c.OnUnauthorized(func() {
		// Log only. Forcing a logout here would loop background requests
		// through the login page; the session store decides on its next check.
		log.Printf("api: request rejected with 401")
	})

	store := session.NewStore(c, cfg.IdentityCachePath())
	app := tui.NewApp(c, store, cfg.APIURL)
	p := tea.NewProgram(app, tea.WithAltScreen())

	mgr := realtime.NewManager(socketURL(cfg), func(ev domain.Event) {
		p.Send(tui.EventMsg{Event: ev})
	})
	defer mgr.Close()

	// The channel and the cookie file follow every identity change.
	store.OnChange(func(id *domain.Identity) {
		mgr.SetIdentity(context.Background(), id)
		if id == nil {
			if err := c.ClearCookies(cfg.CookiePath()); err != nil {
				log.Printf("cookie clear failed: %v", err)
			}
			return
		}
		if err := c.SaveCookies(cfg.CookiePath()); err != nil {
			log.Printf("cookie save failed: %v", err)
		}
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	facePath := fs.String("face", "", "path to a face descriptor json file")
	email := fs.String("email", "", "account email (required with --face)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := client.New(cfg.APIURL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var id *domain.Identity
	var err error
	if *facePath != "" {
		id, err = faceLogin(ctx, c, *facePath, *email)
	} else {
		id, err = googleLogin(ctx, c, cfg)
	}
	if err != nil {
		return err
	}

	store := session.NewStore(c, cfg.IdentityCachePath())
	if err := store.CompleteExternalLogin(id); err != nil {
		return err
	}
	if err := c.SaveCookies(cfg.CookiePath()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Printf("Signed in as %s (%s)\n", id.Name, id.Role)
	return runTUI(cfg)
}

// faceLogin reads a stored face descriptor and authenticates with it.
// Capturing the descriptor is the enrollment tool's job; here it is just an
// opaque vector forwarded for server-side matching.
func faceLogin(ctx context.Context, c *client.Client, path, email string) (*domain.Identity, error) {
	if email == "" {
		return nil, fmt.Errorf("--face requires --email")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	var descriptor []float64
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	id, err := c.FaceAuth(ctx, email, descriptor)
	if err != nil {
		return nil, err
	}
	return id, nil
}

// googleLogin runs the browser OAuth flow on an ephemeral localhost port and
// forwards the resulting token to the portal for verification.
func googleLogin(ctx context.Context, c *client.Client, cfg config.Config) (*domain.Identity, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("google sign-in is not configured, set PLACENET_GOOGLE_CLIENT_ID and PLACENET_GOOGLE_CLIENT_SECRET")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}
	defer listener.Close() //nolint:errcheck

	port := listener.Addr().(*net.TCPAddr).Port
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	// CSRF state token.
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, fmt.Errorf("generate oauth state: %w", err)
	}
	expectedState := hex.EncodeToString(stateBytes)

	tokenCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != expectedState {
			http.Error(w, "invalid state", http.StatusForbidden)
			errCh <- fmt.Errorf("callback state mismatch (possible CSRF)")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("callback received without code")
			return
		}
		tok, exchErr := conf.Exchange(r.Context(), code)
		if exchErr != nil {
			http.Error(w, "exchange failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("code exchange: %w", exchErr)
			return
		}
		// The portal verifies the ID token server side, same as the web
		// client's credential flow.
		idToken, _ := tok.Extra("id_token").(string)
		if idToken == "" {
			http.Error(w, "no id token", http.StatusInternalServerError)
			errCh <- fmt.Errorf("exchange response had no id token")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackHTML) //nolint:errcheck
		tokenCh <- idToken
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if srvErr := srv.Serve(listener); srvErr != nil && srvErr != http.ErrServerClosed {
			errCh <- srvErr
		}
	}()
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx) //nolint:errcheck
	}()

	authURL := conf.AuthCodeURL(expectedState)
	fmt.Println("Opening browser to authenticate...")
	if err := browser.Open(authURL); err != nil {
		fmt.Printf("Could not open browser. Visit this URL manually:\n  %s\n", authURL)
	}

	select {
	case token := <-tokenCh:
		id, err := c.GoogleAuth(ctx, token)
		if err != nil {
			return nil, err
		}
		return id, nil
	case srvErr := <-errCh:
		return nil, fmt.Errorf("callback server error: %w", srvErr)
	case <-ctx.Done():
		return nil, fmt.Errorf("login timed out, no callback received")
	}
}

func runLogout(cfg config.Config) error {
	c := client.New(cfg.APIURL)
	if err := c.LoadCookies(cfg.CookiePath()); err != nil {
		log.Printf("cookie restore failed: %v", err)
	}
	store := session.NewStore(c, cfg.IdentityCachePath())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store.Logout(ctx)

	if err := c.ClearCookies(cfg.CookiePath()); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

const callbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>PlaceNet</title>
<style>
body{background:#0d0d14;color:#e4e4ec;font-family:monospace;
height:100vh;display:flex;align-items:center;justify-content:center}
.card{text-align:center}
.logo{font-size:28px;font-weight:700;letter-spacing:10px;color:#818cf8}
p{color:#8890a0;margin-top:16px}
</style>
</head>
<body>
<div class="card">
<div class="logo">PLACENET</div>
<p>Signed in. You can close this tab and return to the terminal.</p>
</div>
</body>
</html>
`
