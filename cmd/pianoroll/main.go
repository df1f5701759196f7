package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Garik-/midifile/internal/config"
	"github.com/Garik-/midifile/internal/logging"
	"github.com/Garik-/midifile/pkg/midi"
)

var (
	inFlag     = flag.String("i", "", "Input midi file")
	outFlag    = flag.String("o", "roll.png", "Output png file")
	configFlag = flag.String("c", "", "The path to a TOML config file")
)

func run(log *zap.Logger, cfg config.PianoRollConfig) error {
	buf, err := os.ReadFile(*inFlag)
	if err != nil {
		return err
	}

	f, err := midi.Parse(buf)
	if err != nil {
		return err
	}

	r := buildRoll(f)
	rd := &renderer{
		pixelsPerBeat: cfg.PixelsPerBeat,
		noteHeight:    cfg.NoteHeight,
		ticksPerBeat:  f.Header.TicksPerBeat,
		maxWidth:      cfg.MaxWidth,
		maxHeight:     cfg.MaxHeight,
	}

	dc, err := rd.render(r)
	if err != nil {
		return err
	}

	if err := dc.SavePNG(*outFlag); err != nil {
		return err
	}

	log.Info("rendered",
		zap.String("out", *outFlag),
		zap.Int("notes", len(r.Spans)),
		zap.Uint64("ticks", r.Length))
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, cfg.PianoRoll); err != nil {
		log.Fatal("render failed", zap.Error(err))
	}
}
