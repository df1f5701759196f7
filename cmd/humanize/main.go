package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Garik-/midifile/internal/config"
	"github.com/Garik-/midifile/internal/logging"
	"github.com/Garik-/midifile/internal/velocitydb"
	"github.com/Garik-/midifile/pkg/midi"
)

var (
	databaseFlag = flag.String("d", "", "The path to the database json file")
	inFlag       = flag.String("i", "", "Input midi file")
	outFlag      = flag.String("o", "", "Output midi file")
	configFlag   = flag.String("c", "", "The path to a TOML config file")
	minFlag      = flag.Int("min", -1, "Min velocity, overrides humanize.min_velocity")
	maxFlag      = flag.Int("max", -1, "Max velocity, overrides humanize.max_velocity")
)

func importDatabase(name string) (*velocitydb.DB, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return velocitydb.Load(f)
}

// writeHumanized writes buf to path with the velocities rewritten by h.
func writeHumanized(path string, buf []byte, file *midi.File, h *humanizer) (n int, err error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := out.Write(buf); err != nil {
		return 0, err
	}
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	return h.writeRandVelocity(out, file)
}

// applyFlags overrides the velocity range and validates the result.
func applyFlags(cfg config.Config, minVelocity, maxVelocity int) (config.Config, error) {
	if minVelocity >= 0 {
		cfg.Humanize.MinVelocity = minVelocity
	}
	if maxVelocity >= 0 {
		cfg.Humanize.MaxVelocity = maxVelocity
	}
	return cfg, config.Validate(cfg)
}

func run(log *zap.Logger, cfg config.HumanizeConfig) error {
	db, err := importDatabase(*databaseFlag)
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(*inFlag)
	if err != nil {
		return err
	}

	file, err := midi.Parse(buf)
	if err != nil {
		return err
	}

	h := &humanizer{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		min: cfg.MinVelocity,
		max: cfg.MaxVelocity,
	}

	n, err := writeHumanized(*outFlag, buf, file, h)
	if err != nil {
		return err
	}

	log.Info("humanized", zap.String("in", *inFlag), zap.String("out", *outFlag), zap.Int("notes", n))
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *databaseFlag == "" || *inFlag == "" || *outFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg, err = applyFlags(cfg, *minFlag, *maxFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, cfg.Humanize); err != nil {
		log.Fatal("humanize failed", zap.Error(err))
	}
}
