package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: folio new <dir>")
			os.Exit(1)
		}
		if err := runNew(os.Args[2], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: folio check <content.yaml>")
			os.Exit(1)
		}
		if err := runCheck(os.Args[2], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("folio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := folio.LoadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return folio.New(cfg).Run(ctx)
}

func runRender(args []string) error {
	flags := flag.NewFlagSet("render", flag.ContinueOnError)
	out := flags.String("o", "", "write the page to `file` instead of stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := folio.LoadConfig()
	if err != nil {
		return err
	}
	cfg.LogLevel = "off"
	app := folio.New(cfg)

	if *out == "" {
		return app.RenderPage(os.Stdout)
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := app.RenderPage(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runCheck(path string, w io.Writer) error {
	c, err := content.Load(path)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintf(w, "  - %s\n", p)
			}
			return fmt.Errorf("%s: %d problem(s)", path, len(verr.Problems))
		}
		return err
	}
	fmt.Fprintf(w, "%s: ok (%d metrics, %d projects, %d contact links)\n",
		path, len(c.Metrics), len(c.Projects), len(c.Contact.Links))
	return nil
}

func printUsage() {
	fmt.Println(`folio - a single-page portfolio with a WebAssembly scroll animation

Usage:
  folio <command> [arguments]

Commands:
  new <dir>             Create a starter site in dir
  serve                 Serve the page (configured through FOLIO_* variables)
  render [-o file]      Write the rendered page to stdout or a file
  check <content.yaml>  Validate a content file
  version               Print the folio version
  help                  Show this help message

Examples:
  folio new ada-lovelace
  FOLIO_CONTENT=content.yaml folio serve
  folio render -o dist/index.html`)
}
