package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"

	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/ecc-elgamal-sandbox/api"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc/curves"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	"github.com/vocdoni/ecc-elgamal-sandbox/service"
	"github.com/vocdoni/ecc-elgamal-sandbox/storage"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"
)

const (
	modeServe = "serve"
	modeDemo  = "demo"
)

func main() {
	host := flag.String("host", "0.0.0.0", "API listen host")
	port := flag.Int("port", 9090, "API listen port")
	logLevel := flag.String("logLevel", log.LogLevelInfo, "log level (debug, info, warn, error)")
	logOutput := flag.String("logOutput", "stdout", "log output (stdout, stderr or a file path)")
	dataDir := flag.String("datadir", "", "directory of the pebble database, in memory if empty")
	maxModulus := flag.Int64("maxModulus", api.DefaultMaxModulus, "largest prime accepted by the API")
	preset := flag.String("curve", "", fmt.Sprintf("preset curve to build on startup %v", curves.Types()))
	p := flag.Int64("p", 23, "demo: prime modulus")
	a := flag.Int64("a", 1, "demo: coefficient a")
	b := flag.Int64("b", 1, "demo: coefficient b")
	secret := flag.Int64("secret", 0, "demo: ElGamal secret key, random if 0")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [%s|%s] [flags]\n", os.Args[0], modeServe, modeDemo)
		flag.PrintDefaults()
	}
	flag.Parse()
	log.Init(*logLevel, *logOutput, nil)

	mode := modeServe
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}
	switch mode {
	case modeServe:
		if err := serve(*host, *port, *dataDir, *maxModulus, *preset); err != nil {
			log.Fatal(err)
		}
	case modeDemo:
		if err := demo(os.Stdout, *p, *a, *b, *secret); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// serve runs the API service until the process receives SIGINT or SIGTERM.
func serve(host string, port int, dataDir string, maxModulus int64, preset string) error {
	var (
		database db.Database
		err      error
	)
	if dataDir == "" {
		database = memdb.New()
	} else if database, err = metadb.New(db.TypePebble, dataDir); err != nil {
		return errors.Wrap(err, "open database")
	}
	stg := storage.New(database)
	defer stg.Close()

	if preset != "" {
		if !curves.IsSupported(preset) {
			return errors.Newf("unsupported curve type: %s", preset)
		}
		id := storage.PresetID(preset)
		if _, err := stg.Group(id); errors.Is(err, storage.ErrNotFound) {
			g, err := curves.New(preset)
			if err != nil {
				return err
			}
			if _, err := stg.SetPresetGroup(preset, g); err != nil {
				return err
			}
			log.Infow("preset curve built", "curve", preset, "curveId", id.String(),
				"generator", g.Generator().String(), "order", g.Order())
		} else if err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := service.NewAPI(stg, host, port, maxModulus)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	h, pt := srv.HostPort()
	log.Infow("sandbox API ready", "host", h, "port", pt)

	<-ctx.Done()
	log.Info("shutting down")
	srv.Stop()
	return nil
}
