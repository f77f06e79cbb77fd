package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"ggp/config"
	"ggp/experiments"
	"ggp/loader"
	"ggp/networks"
	"ggp/statemachine"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const builtinPrefix = "builtin:"

var (
	configPath  string
	goalNetwork string
	cfg         config.Config

	rootCmd = &cobra.Command{
		Use:           "ggp",
		Short:         "Propositional network state machine for general game playing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect <network.json|builtin:name>",
		Short: "Build a network and print its roles and initial position",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	perfCmd = &cobra.Command{
		Use:   "perf <network.json|builtin:name>",
		Short: "Measure depth charge throughput from the initial state",
		Args:  cobra.ExactArgs(1),
		RunE:  runPerf,
	}

	matchCmd = &cobra.Command{
		Use:   "match <network.json|builtin:name>",
		Short: "Play a batch of refereed matches between built-in players",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatch,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	for _, cmd := range []*cobra.Command{perfCmd, matchCmd} {
		cmd.Flags().StringVar(&goalNetwork, "goal-network", "", "separate network answering goal queries")
	}
	perfCmd.Flags().Int("goroutines", 0, "override perf.goroutines")
	perfCmd.Flags().Duration("duration", 0, "override perf.duration")
	matchCmd.Flags().Int("games", 0, "override match.games")
	matchCmd.Flags().StringSlice("players", nil, "override match.players")

	rootCmd.AddCommand(inspectCmd, perfCmd, matchCmd)
}

// openMachine builds the network named by arg and returns its display name.
func openMachine(arg string) (*statemachine.Machine, string, error) {
	var (
		desc *loader.Description
		name string
		err  error
	)
	if strings.HasPrefix(arg, builtinPrefix) {
		name = strings.TrimPrefix(arg, builtinPrefix)
		desc, err = networks.ByName(name)
	} else {
		name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		desc, err = loader.Load(arg)
	}
	if err != nil {
		return nil, "", err
	}

	sm, err := loader.Build(desc, statemachine.WithLogger(log.Logger))
	if err != nil {
		return nil, "", fmt.Errorf("build %s: %w", name, err)
	}
	return sm, name, nil
}

// openCombined builds arg when it names a combined machine. ok is false
// for plain networks.
func openCombined(arg string) (sm statemachine.StateMachine, name string, ok bool, err error) {
	var desc *loader.CombinedDescription
	if strings.HasPrefix(arg, builtinPrefix) {
		name = strings.TrimPrefix(arg, builtinPrefix)
		if desc, ok = networks.CombinedByName(name); !ok {
			return nil, "", false, nil
		}
	} else {
		data, readErr := os.ReadFile(arg)
		if readErr != nil || !loader.IsCombined(data) {
			return nil, "", false, nil
		}
		name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		if desc, err = loader.ParseCombined(data); err != nil {
			return nil, name, true, err
		}
	}

	combined, err := loader.BuildCombined(desc, statemachine.WithLogger(log.Logger))
	if err != nil {
		return nil, name, true, fmt.Errorf("build %s: %w", name, err)
	}
	return combined, name, true, nil
}

// openStateMachine opens a combined machine or a plain network, wrapping the
// latter with --goal-network when given.
func openStateMachine(arg string) (statemachine.StateMachine, string, error) {
	if combined, name, ok, err := openCombined(arg); ok {
		if err == nil && goalNetwork != "" {
			return nil, name, fmt.Errorf("--goal-network does not apply to combined machine %s", name)
		}
		return combined, name, err
	}

	sm, name, err := openMachine(arg)
	if err != nil || goalNetwork == "" {
		return sm, name, err
	}
	goals, _, err := openMachine(goalNetwork)
	if err != nil {
		return nil, "", err
	}
	return statemachine.NewGoalless(sm, goals), name, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runInspect(cmd *cobra.Command, args []string) error {
	sm, name, err := openMachine(args[0])
	if err != nil {
		return err
	}
	describe(cmd.OutOrStdout(), name, sm)
	return nil
}

func describe(w io.Writer, name string, sm *statemachine.Machine) {
	state := sm.CurrentState()
	fmt.Fprintf(w, "network %s: %d components, %d bases, %d roles\n", name, sm.NumComponents(), sm.NumBases(), sm.RoleCount())
	fmt.Fprintf(w, "initial state %s (hash %016x)\n", state, state.Hash())
	fmt.Fprintf(w, "terminal: %t\n", sm.IsTerminal())

	for role := 0; role < sm.RoleCount(); role++ {
		info := sm.RoleInfo(role)
		ls := sm.LegalState(role)
		moves := make([]string, 0, ls.Count())
		for i := 0; i < ls.Count(); i++ {
			moves = append(moves, sm.LegalToMove(role, ls.Legal(i)))
		}
		fmt.Fprintf(w, "role %d %s: %d inputs, %d goals, legal [%s]\n",
			role, info.Name, info.NumInputsLegals, info.NumGoals, strings.Join(moves, " "))
	}
}

func runPerf(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetInt("goroutines"); v > 0 {
		cfg.Perf.Goroutines = v
	}
	if v, _ := cmd.Flags().GetDuration("duration"); v > 0 {
		cfg.Perf.Duration = v
	}

	sm, name, err := openStateMachine(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	reg := prometheus.NewRegistry()
	record, err := experiments.RunPerf(ctx, cfg, name, sm, reg)
	if err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				log.Debug().Msgf("%s %.0f", family.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				log.Debug().Msgf("%s count=%d sum=%.0f", family.GetName(), m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "#msecs %d, #rollouts %d, #state changes %d, goroutines %d\n",
		record.Msecs(), record.Rollouts, record.StateChanges, record.Goroutines)
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetInt("games"); v > 0 {
		cfg.Match.Games = v
	}
	if v, _ := cmd.Flags().GetStringSlice("players"); len(v) > 0 {
		cfg.Match.Players = v
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	sm, name, err := openStateMachine(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	report, err := experiments.RunMatches(ctx, cfg, name, sm)
	if err != nil {
		return err
	}

	totals := make([]int, sm.RoleCount())
	for _, g := range report.Games {
		for role, goal := range g.Goals {
			if goal > 0 {
				totals[role] += goal
			}
		}
	}
	for role, total := range totals {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: mean goal %.1f over %d games\n",
			sm.RoleInfo(role).Name, float64(total)/float64(len(report.Games)), len(report.Games))
	}
	if report.Dir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", report.Dir)
	}
	return nil
}
