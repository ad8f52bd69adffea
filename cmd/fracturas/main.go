// Command fracturas is a CLI client for the fracture-prediction service:
// it authenticates, uploads radiographs for prediction, and records a
// physician's validation of the returned result.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/asalazarq/fracturas-client/internal/api"
	"github.com/asalazarq/fracturas-client/internal/config"
	"github.com/asalazarq/fracturas-client/internal/errs"
	"github.com/asalazarq/fracturas-client/internal/model"
	"github.com/asalazarq/fracturas-client/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `fracturas CLI
Usage:
  fracturas [-api URL] [-v] <cmd> [args]

Commands:
  version
  register  -email <email> -name <name> [-role tecnico|medico]   (saves token)
  login     -email <email>                                       (saves token)
  upload    -file <image.jpg|image.png> [-name <filename>]
  validate  -id <resultID> -valid=<true|false> [-label <l>] [-note <n>]
  status
  logout
`)
	os.Exit(2)
}

func main() {
	cfg := config.Load()

	baseURL := flag.String("api", cfg.APIBaseURL, "API base URL")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := session.NewStore(session.NewFileStorage(cfg.ConfigDir), logger)
	store.CheckSession()
	guard := session.NewGuard(store)
	client := api.New(*baseURL, logger, api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))

	switch cmd {

	case "version":
		fmt.Printf("fracturas %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		name := fs.String("name", "", "full name")
		role := fs.String("role", string(model.RoleTechnician), "role: tecnico or medico")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *name == "" {
			fmt.Fprintln(os.Stderr, "need -email and -name")
			os.Exit(1)
		}
		reg := model.Registration{Email: *email, Name: *name, Role: model.Role(*role), Active: true}
		env, err := client.Register(ctx, reg)
		if err != nil {
			fail(err)
		}
		if err := store.Login(env.AccessToken, model.User{Email: *email, Role: reg.Role}); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" {
			fmt.Fprintln(os.Stderr, "need -email")
			os.Exit(1)
		}
		env, err := client.Login(ctx, *email)
		if err != nil {
			fail(err)
		}
		if err := store.Login(env.AccessToken, model.User{Email: *email}); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "upload":
		fs := flag.NewFlagSet("upload", flag.ExitOnError)
		file := fs.String("file", "", "image path (.jpg/.jpeg/.png)")
		name := fs.String("name", "", "filename override")
		_ = fs.Parse(flag.Args()[1:])
		if *file == "" {
			fmt.Fprintln(os.Stderr, "need -file")
			os.Exit(1)
		}
		token, err := guard.RequireAuth()
		if err != nil {
			fail(err)
		}
		resp, err := client.UploadRadiograph(ctx, token, *file, *name)
		if err != nil {
			fail(err)
		}
		printJSON(resp)

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		id := fs.String("id", "", "prediction result id")
		valid := fs.Bool("valid", false, "mark the prediction as valid")
		label := fs.String("label", "", "corrected label (optional)")
		note := fs.String("note", "", "observation (optional)")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		token, err := guard.RequireAuth()
		if err != nil {
			fail(err)
		}
		v := model.Validation{Validated: *valid, NewLabel: *label, Note: *note}
		resp, err := client.ValidateResult(ctx, token, *id, v)
		if err != nil {
			fail(err)
		}
		printJSON(resp)

	case "status":
		st := store.Session()
		printJSON(st)

	case "logout":
		store.Logout()
		fmt.Println("ok")

	default:
		usage()
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	if errors.Is(err, errs.ErrNotAuthenticated) {
		fmt.Fprintln(os.Stderr, "not logged in (run: fracturas login -email <email>)")
		os.Exit(1)
	}
	var e *errs.Error
	if errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "%s error: %s\n", e.Kind, e.Message)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
