package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/qmc/evaluate"
	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/sampler"
	"github.com/katalvlaran/qmc/telemetry"
)

type loggerKey struct{}

func withLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

func loggerFrom(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sample a wave function and estimate its energy",
		RunE:  runEvaluation,
	}
	flags := cmd.Flags()
	flags.String("system", "H2", "molecular preset (H, He, H2, LiH, Be)")
	flags.Float64("zeta", 1.0, "orbital exponent of the reference wave function")
	flags.Int("walkers", 500, "number of Markov-chain walkers")
	flags.Int("steps", 500, "number of yielded sampling steps")
	flags.Float64("tau", sampler.DefaultTau, "initial proposal step size")
	flags.Float64("target-acceptance", sampler.DefaultTargetAcceptance, "step-size controller target (0 disables)")
	flags.Int("block-size", 10, "energy samples per block")
	flags.Int("discard", sampler.DefaultNDiscard, "burn-in steps to discard")
	flags.Int("decorrelate", sampler.DefaultNDecorrelate, "extra steps between samples")
	flags.Uint64("seed", sampler.DefaultSeed, "chain RNG seed")
	flags.Bool("langevin", false, "use the drift-corrected Langevin proposal")
	flags.String("metrics-listen", "", "expose Prometheus sampling metrics on this address")
	_ = viper.BindPFlags(flags)
	return cmd
}

func runEvaluation(cmd *cobra.Command, _ []string) error {
	log := loggerFrom(cmd.Context())

	sys, err := physics.FromName(viper.GetString("system"))
	if err != nil {
		return err
	}
	wf := &physics.HydrogenLike{Sys: sys, Zeta: viper.GetFloat64("zeta")}

	seed := viper.GetUint64("seed")
	rng := rand.New(rand.NewSource(seed))
	rs, err := sampler.RandFromMeanField(sys, viper.GetInt("walkers"), sampler.DefaultElecStd, rng)
	if err != nil {
		return err
	}

	var rule sampler.Rule = &sampler.Metropolis{WF: wf}
	if viper.GetBool("langevin") {
		rule = &sampler.Langevin{WF: wf, Sys: sys}
	}

	writer := buildWriter(log)
	s, err := sampler.New(rule, rs,
		sampler.WithTau(viper.GetFloat64("tau")),
		sampler.WithTargetAcceptance(viper.GetFloat64("target-acceptance")),
		sampler.WithDiscard(viper.GetInt("discard")),
		sampler.WithDecorrelate(viper.GetInt("decorrelate")),
		sampler.WithSeed(seed),
		sampler.WithWriter(writer),
	)
	if err != nil {
		return err
	}

	steps := viper.GetInt("steps")
	log.Info().
		Str("system", viper.GetString("system")).
		Int("walkers", s.Walkers()).
		Int("steps", steps).
		Bool("langevin", viper.GetBool("langevin")).
		Msg("sampling")

	start := time.Now()
	stream, err := evaluate.SampleWF(wf, s, steps,
		evaluate.WithBlockSize(viper.GetInt("block-size")),
		evaluate.WithWriter(writer),
	)
	if err != nil {
		return err
	}
	var last *evaluate.Result
	for {
		r, err := stream.Next()
		if err == evaluate.ErrDone {
			break
		}
		if err != nil {
			return err
		}
		if r.Energy == nil {
			log.Info().Int("step", r.Step).Msg("equilibrated")
			continue
		}
		log.Info().
			Int("step", r.Step).
			Float64("E", r.Energy.Value).
			Float64("err", r.Energy.Err).
			Msg("block committed")
		rr := r
		last = &rr
	}
	if last == nil {
		return evaluate.ErrNoEstimate
	}
	log.Info().
		Float64("E", last.Energy.Value).
		Float64("err", last.Energy.Err).
		Dur("elapsed", time.Since(start)).
		Msg("done")
	return nil
}

// buildWriter assembles the telemetry sink: zerolog trace output always,
// plus Prometheus when a listen address is configured. Telemetry is
// best-effort; a failing metrics setup degrades to logging only.
func buildWriter(log zerolog.Logger) telemetry.Writer {
	writers := []telemetry.Writer{telemetry.LogWriter{L: log}}
	if addr := viper.GetString("metrics-listen"); addr != "" {
		reg := prometheus.NewRegistry()
		pw, err := telemetry.NewPromWriter(reg)
		if err != nil {
			log.Warn().Err(err).Msg("metrics disabled")
		} else {
			writers = append(writers, pw)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			go func() {
				if err := http.ListenAndServe(addr, mux); err != nil {
					log.Warn().Err(err).Msg("metrics listener stopped")
				}
			}()
		}
	}
	return telemetry.MultiWriter(writers...)
}
