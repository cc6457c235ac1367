package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"scotlandyard/config"
	"scotlandyard/experiments"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	graph := flag.String("graph", "", "Board file, overrides the configuration")
	games := flag.Int("games", 0, "Games per matchup, overrides the configuration")
	experiment := flag.String("experiment", "", "Experiment to run: matchups or workers (default: a single self-play game)")
	timeout := flag.Duration("timeout", 0, "Abort after this long")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if *graph != "" {
		cfg.Game.Graph = *graph
	}
	if *games > 0 {
		cfg.Experiments.Games = *games
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start, err := experiments.LoadStart(cfg.Game)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load board")
	}

	var results []experiments.Result
	switch *experiment {
	case "":
		cfg.Experiments.Games = 1
		cfg.Experiments.Output = ""
		cfg.Experiments.Matchups = []config.Matchup{{Evader: cfg.Evader, Seeker: cfg.Strategy}}
		results, err = experiments.Run(ctx, cfg, start)
	case "matchups":
		results, err = experiments.Run(ctx, cfg, start)
	case "workers":
		results, err = experiments.RunWorkerScaling(ctx, cfg, start, []int{2, 4, 8})
	default:
		err = fmt.Errorf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	printResults(results)
}

func printResults(results []experiments.Result) {
	o := termenv.NewOutput(os.Stdout)
	evader := func(s string) termenv.Style { return o.String(s).Foreground(o.Color("1")).Bold() }
	seeker := func(s string) termenv.Style { return o.String(s).Foreground(o.Color("4")).Bold() }

	for _, r := range results {
		fmt.Fprintf(o, "%s vs %s: %s %s %d unfinished of %d\n",
			evader(fmt.Sprintf("Mr X (%s)", r.Evader.Strategy)),
			seeker(fmt.Sprintf("detectives (%s)", r.Seeker.Strategy)),
			evader(fmt.Sprintf("%d", r.EvaderWins)),
			seeker(fmt.Sprintf("%d", r.SeekerWins)),
			r.Unfinished, r.Games,
		)
	}
}
