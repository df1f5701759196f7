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
	jsonFlag   = flag.Bool("json", false, "Print JSON instead of text")
	configFlag = flag.String("c", "", "The path to a TOML config file")
	debugFlag  = flag.Bool("v", false, "Trace chunk decoding")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] FILE.mid\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
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

	if *debugFlag {
		midi.SetLogger(log)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal("open", zap.Error(err))
	}
	defer f.Close()

	file, err := midi.Decode(f)
	if err != nil {
		log.Fatal("decode", zap.String("path", flag.Arg(0)), zap.Error(err))
	}

	if *jsonFlag {
		err = writeJSON(os.Stdout, file)
	} else {
		err = writeText(os.Stdout, file)
	}
	if err != nil {
		log.Fatal("write", zap.Error(err))
	}
}
