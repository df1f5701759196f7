package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Garik-/midifile/internal/config"
	"github.com/Garik-/midifile/internal/logging"
)

var (
	listFlag   = flag.String("l", "", "The path to the list of midi files,\nfind . -type f -name \"*.mid\" > midi_list.txt")
	maxFlag    = flag.Int("p", 0, "Number of files processed in parallel, overrides scan.workers")
	configFlag = flag.String("c", "", "The path to a TOML config file")
	outFlag    = flag.String("o", "velocity.json", "Output database json file")
	strictFlag = flag.Bool("strict", false, "Stop on the first file that fails to decode")
	debugFlag  = flag.Bool("v", false, "Debug logging")
)

func readList(ctx context.Context, file *os.File) <-chan string {
	out := make(chan string)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	go func() {
		defer close(out)
		for scanner.Scan() {
			if scanner.Text() == "" {
				continue
			}
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func run(log *zap.Logger, workers int) error {
	f, err := os.Open(*listFlag)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := newVelocityMap(ctx, readList(ctx, f), workers, *strictFlag)
	if err != nil {
		return err
	}

	out, err := os.Create(*outFlag)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := db.Save(out); err != nil {
		return err
	}

	log.Info("database written", zap.String("path", *outFlag), zap.Int("notes", db.Len()))
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listFlag == "" || *maxFlag < 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *maxFlag > 0 {
		cfg.Scan.Workers = *maxFlag
	}
	if *debugFlag {
		cfg.Log.Level = "debug"
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	setLogger(log)
	if *debugFlag {
		enableDebugLogging(log)
	}

	if err := run(log, cfg.Scan.Workers); err != nil {
		log.Fatal("scan failed", zap.Error(err))
	}
}
