package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/nullwave/tonekit"
	"github.com/nullwave/tonekit/internal/duration"
	"github.com/nullwave/tonekit/internal/seqprog"
)

func main() {
	var (
		sampleRate   = pflag.Int("sample-rate", 48000, "output sample rate")
		soundPath    = pflag.String("file", "", "path to an OGG Vorbis sound file")
		tempo        = pflag.Float64("tempo", 120, "metronome tempo in BPM")
		loopStart    = pflag.Float64("loop-start-beats", 0, "loop window start, in beats")
		loopEnd      = pflag.Float64("loop-end-beats", 0, "loop window end, in beats (0 = play the sound once, no loop)")
		beatInterval = pflag.Float64("beat-interval", 1, "metronome interval to report crossings for, in beats")
		playSeconds  = pflag.Float64("play-seconds", 5, "how long to let the demo run before exiting")
		verbose      = pflag.Bool("verbose", false, "enable debug logging")
	)
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *soundPath == "" {
		logger.Error("missing required -file")
		os.Exit(1)
	}

	f, err := os.Open(*soundPath)
	if err != nil {
		logger.Error("opening sound file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	snd, err := tonekit.DecodeOggVorbis(f)
	if err != nil {
		logger.Error("decoding sound", "error", err)
		os.Exit(1)
	}

	mgr, err := tonekit.NewManager(*sampleRate, tonekit.WithLogger(logger))
	if err != nil {
		logger.Error("starting audio manager", "error", err)
		os.Exit(1)
	}
	defer mgr.Close()

	mgr.OnCustomEvent(func(payload any) {
		fmt.Printf("custom event: %v\n", payload)
	})

	soundID, err := mgr.LoadSound(snd)
	if err != nil {
		logger.Error("loading sound", "error", err)
		os.Exit(1)
	}

	if err := mgr.SetMetronomeTempo(*tempo); err != nil {
		logger.Error("setting tempo", "error", err)
		os.Exit(1)
	}
	if err := mgr.StartMetronome(); err != nil {
		logger.Error("starting metronome", "error", err)
		os.Exit(1)
	}
	if err := mgr.Metronome().AddInterval(*beatInterval); err != nil {
		logger.Error("subscribing metronome interval", "error", err)
		os.Exit(1)
	}

	if *loopEnd > 0 {
		start := duration.OfBeats(*loopStart)
		end := duration.OfBeats(*loopEnd)
		loop := seqprog.LoopSettings{Start: &start, End: &end}
		if _, err := mgr.StartLoopSound(soundID, snd, loop, tonekit.DefaultInstanceSettings()); err != nil {
			logger.Error("starting loop sound", "error", err)
			os.Exit(1)
		}
		fmt.Printf("looping %s beats %.2f..%.2f at %.1f BPM\n", *soundPath, *loopStart, *loopEnd, *tempo)
	} else {
		if _, err := mgr.PlaySound(soundID, tonekit.DefaultInstanceSettings()); err != nil {
			logger.Error("playing sound", "error", err)
			os.Exit(1)
		}
		fmt.Printf("playing %s once\n", *soundPath)
	}

	deadline := time.After(time.Duration(*playSeconds * float64(time.Second)))
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			for _, ev := range mgr.DrainMetronomeEvents() {
				fmt.Printf("beat %.2f (interval %.2f)\n", ev.Beat, ev.Interval)
			}
		}
	}
}
