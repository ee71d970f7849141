// Command rainbowforge is the CLI entrypoint: gen-passwords, gen-hashes,
// dump-hashes, gen-rainbow-table, dump-rainbow-table, crack, server, and
// the client upload/crack subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kenneth/rainbowforge/internal/audit"
	"github.com/kenneth/rainbowforge/internal/cache"
	"github.com/kenneth/rainbowforge/internal/cracker"
	"github.com/kenneth/rainbowforge/internal/genhashes"
	"github.com/kenneth/rainbowforge/internal/genpasswords"
	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/hashfile"
	"github.com/kenneth/rainbowforge/internal/limiter"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
	"github.com/kenneth/rainbowforge/internal/rfclient"
	"github.com/kenneth/rainbowforge/internal/rfconfig"
	"github.com/kenneth/rainbowforge/internal/rflog"
	"github.com/kenneth/rainbowforge/internal/rfmetrics"
	"github.com/kenneth/rainbowforge/internal/rftrace"
	"github.com/kenneth/rainbowforge/internal/server"
	"github.com/kenneth/rainbowforge/internal/tablebuilder"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := rflog.New("info")
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "gen-passwords":
		err = runGenPasswords(ctx, os.Args[2:])
	case "gen-hashes":
		err = runGenHashes(ctx, os.Args[2:])
	case "dump-hashes":
		err = runDumpHashes(os.Args[2:])
	case "gen-rainbow-table":
		err = runGenRainbowTable(ctx, os.Args[2:])
	case "dump-rainbow-table":
		err = runDumpRainbowTable(os.Args[2:])
	case "crack":
		err = runCrack(ctx, os.Args[2:])
	case "server":
		err = runServer(ctx, os.Args[2:], log)
	case "client":
		err = runClient(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rainbowforge <gen-passwords|gen-hashes|dump-hashes|gen-rainbow-table|dump-rainbow-table|crack|server|client> [flags]")
}

func runGenPasswords(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gen-passwords", flag.ExitOnError)
	chars := fs.Int("chars", 8, "password length")
	num := fs.Int("num", 1, "number of passwords")
	threads := fs.Int("threads", 1, "worker thread count")
	outFile := fs.String("out-file", "std", "output path, or \"std\" for stdout")
	fs.Parse(args)

	w := os.Stdout
	if *outFile != "std" {
		f, err := os.Create(*outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return genpasswords.Generate(ctx, uint8(*chars), *num, *threads, w)
}

func runGenHashes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gen-hashes", flag.ExitOnError)
	inFile := fs.String("in-file", "", "input password file")
	outFile := fs.String("out-file", "std", "output path, or \"std\" for stdout")
	threads := fs.Int("threads", 1, "worker thread count")
	algoName := fs.String("algorithm", "md5", "md5|sha256|sha3_512|scrypt")
	fs.Parse(args)

	algo, err := hashalgo.Parse(*algoName)
	if err != nil {
		return err
	}

	outPath := *outFile
	if outPath == "std" {
		tmp, err := os.CreateTemp("", "rainbowforge-hashes-*")
		if err != nil {
			return err
		}
		outPath = tmp.Name()
		tmp.Close()
		defer os.Remove(outPath)
	}

	if err := genhashes.Generate(ctx, *inFile, outPath, *threads, algo); err != nil {
		return err
	}

	if *outFile == "std" {
		data, err := os.ReadFile(outPath)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return nil
}

func runDumpHashes(args []string) error {
	fs := flag.NewFlagSet("dump-hashes", flag.ExitOnError)
	inFile := fs.String("in-file", "", "hash file to dump")
	fs.Parse(args)

	f, err := os.Open(*inFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return hashfile.Dump(f, os.Stdout)
}

func runGenRainbowTable(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gen-rainbow-table", flag.ExitOnError)
	numLinks := fs.Uint("num-links", 1000, "chain length")
	threads := fs.Int("threads", 1, "worker thread count")
	outFile := fs.String("out-file", "", "output rainbow-table path")
	algoName := fs.String("algorithm", "md5", "md5|sha256|sha3_512")
	inFile := fs.String("in-file", "", "input password file")
	fs.Parse(args)

	algo, err := hashalgo.Parse(*algoName)
	if err != nil {
		return err
	}
	return tablebuilder.Build(ctx, *inFile, *outFile, uint32(*numLinks), *threads, algo)
}

func runDumpRainbowTable(args []string) error {
	fs := flag.NewFlagSet("dump-rainbow-table", flag.ExitOnError)
	inFile := fs.String("in-file", "", "rainbow-table file to dump")
	fs.Parse(args)

	f, err := os.Open(*inFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return rainbowtable.Dump(f, os.Stdout)
}

func runCrack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("crack", flag.ExitOnError)
	inFile := fs.String("in-file", "", "rainbow-table file")
	hashesFile := fs.String("hashes", "", "hash file")
	outFile := fs.String("out-file", "", "output path (default stdout)")
	threads := fs.Int("threads", 1, "worker thread count")
	fs.Parse(args)

	return cracker.CrackFile(ctx, *inFile, *hashesFile, *outFile, *threads)
}

func runServer(ctx context.Context, args []string, log *logrus.Logger) error {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	bind := fs.String("bind", "0.0.0.0", "bind address")
	port := fs.Int("port", 9000, "listen port")
	adminAddr := fs.String("admin-addr", "127.0.0.1:9100", "admin sidecar address")
	computeThreads := fs.Int("compute-threads", 4, "compute-limiter permit count")
	asyncThreads := fs.Int("async-threads", 0, "GOMAXPROCS override (0 = leave as-is)")
	cacheSize := fs.Int64("cache-size", 1<<30, "cracked-password cache byte budget")
	auditFile := fs.String("audit-log", "", "path to append audit events to (default: stdout only)")
	configPath := fs.String("config", "", "optional YAML config file; overrides the flags above; later edits to compute_threads/max_cache_size are logged but do not resize the running limiter or cache")
	fs.Parse(args)

	if *configPath != "" {
		cfg, err := rfconfig.Load(*configPath)
		if err != nil {
			return err
		}
		*bind, *port, *adminAddr = cfg.Bind, cfg.Port, cfg.AdminAddr
		*computeThreads, *asyncThreads, *cacheSize = cfg.ComputeThreads, cfg.AsyncThreads, cfg.MaxCacheSize
	}

	if *asyncThreads > 0 {
		runtimeGOMAXPROCS(*asyncThreads)
	}

	c := cache.New(*cacheSize)
	l := limiter.New(*computeThreads)
	m := rfmetrics.New(prometheus.DefaultRegisterer)

	if *configPath != "" {
		live := rfconfig.NewLive(rfconfig.Config{ComputeThreads: *computeThreads, MaxCacheSize: *cacheSize})
		stop := make(chan struct{})
		go func() {
			<-ctx.Done()
			close(stop)
		}()
		if err := rfconfig.Watch(*configPath, live, log, stop); err != nil {
			return err
		}
	}

	tp, err := rftrace.New(os.Stdout)
	if err != nil {
		return err
	}
	defer tp.Shutdown(ctx)

	var auditSink audit.EventWriter = &audit.StdoutSink{}
	if *auditFile != "" {
		auditSink = audit.NewBatchSink(audit.NewFileSink(*auditFile), 50, 2*time.Second, 3, 500*time.Millisecond)
	}
	al := audit.NewLogger(1000, auditSink)
	defer al.Close()

	srv := server.New(c, l, m, tp, al, log)

	ln, err := listenTCP(*bind, *port)
	if err != nil {
		return err
	}
	srv.SetReady()

	go func() {
		if err := srv.ServeAdmin(ctx, *adminAddr); err != nil {
			log.WithError(err).Warn("admin sidecar stopped")
		}
	}()

	return srv.Serve(ctx, ln)
}

func runClient(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rainbowforge client <upload|crack> [flags]")
	}
	switch args[0] {
	case "upload":
		fs := flag.NewFlagSet("client upload", flag.ExitOnError)
		srv := fs.String("server", "", "host:port")
		inFile := fs.String("in-file", "", "rainbow-table file")
		name := fs.String("name", "", "table name")
		fs.Parse(args[1:])

		resp, err := rfclient.Upload(*srv, *inFile, *name)
		if err != nil {
			return err
		}
		fmt.Print(resp)
		return nil
	case "crack":
		fs := flag.NewFlagSet("client crack", flag.ExitOnError)
		srv := fs.String("server", "", "host:port")
		inFile := fs.String("in-file", "", "hash file")
		outFile := fs.String("out-file", "", "output path (default stdout)")
		fs.Parse(args[1:])

		resp, err := rfclient.Crack(*srv, *inFile)
		if err != nil {
			return err
		}
		if *outFile == "" {
			fmt.Print(resp)
			return nil
		}
		return os.WriteFile(*outFile, []byte(resp), 0o644)
	default:
		return fmt.Errorf("usage: rainbowforge client <upload|crack> [flags]")
	}
}
