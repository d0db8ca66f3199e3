package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"skirmish/internal/combat"
	"skirmish/internal/config"
	"skirmish/internal/util"
)

// report wraps a single run with the identity needed to replay it.
type report struct {
	RunID    string `json:"run_id"`
	Scenario string `json:"scenario"`
	Seed     int64  `json:"seed"`
	combat.SimResult
}

func runID(scenario string, seed int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", scenario, seed))).String()
}

func main() {
	var cfgDir, out, format string
	var seed int64
	var n, frames, workers int
	var saveLog, verbose bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&format, "format", "json", "output encoding: json or msgpack")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&frames, "frames", 0, "record a frame every N ticks when n==1 (0 = off)")
	flag.IntVar(&workers, "workers", 8, "batch worker count")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skirmish",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if format != "json" && format != "msgpack" {
		logger.Error("unknown output format", "format", format)
		os.Exit(2)
	}

	archCfg, scCfg, err := config.LoadAll(cfgDir)
	if err != nil {
		logger.Error("load config", "dir", cfgDir, "err", err)
		os.Exit(1)
	}
	book, err := combat.NewArchetypeBook(archCfg)
	if err != nil {
		logger.Error("build archetypes", "err", err)
		os.Exit(1)
	}

	if n <= 1 {
		env := &combat.Env{Rng: util.New(seed)}
		w := combat.NewWorld(env, scCfg, book, combat.WithLogger(logger))
		if err := w.Populate(); err != nil {
			logger.Error("populate", "scenario", scCfg.ID, "err", err)
			os.Exit(1)
		}
		opts := combat.RunOptionsFrom(scCfg.Tick, saveLog || frames > 0)
		opts.FrameEvery = frames
		res := combat.RunSingle(w, opts)
		if !saveLog {
			res.Events = nil
		}

		rep := report{RunID: runID(scCfg.ID, seed), Scenario: scCfg.ID, Seed: seed, SimResult: res}
		if err := writeOutput(out, format, rep); err != nil {
			logger.Error("write result", "out", out, "err", err)
			os.Exit(1)
		}
		logger.Info("single run finished",
			"run", rep.RunID,
			"winner", res.Winner,
			"t", fmt.Sprintf("%.2fs", res.Duration/1000),
			"survivors_a", res.Survivors[combat.FactionA],
			"survivors_b", res.Survivors[combat.FactionB],
			"out", out)
		return
	}

	summary, err := runBatch(scCfg, book, seed, n, workers, logger)
	if err != nil {
		logger.Error("batch", "scenario", scCfg.ID, "err", err)
		os.Exit(1)
	}
	if err := writeOutput(out, format, summary); err != nil {
		logger.Error("write summary", "out", out, "err", err)
		os.Exit(1)
	}
	logger.Info("batch done", "runs", n, "win_rate", summary["win_rate"], "out", filepath.Base(out))
}

// runBatch plays n independent battles on a worker pool. Run i is seeded
// from (seed, i) alone and results are folded in run order, so the summary
// does not depend on scheduling or worker count.
func runBatch(sc *config.ScenarioConfig, book *combat.ArchetypeBook, seed int64, n, workers int, logger *log.Logger) (map[string]any, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch needs at least one run, got %d", n)
	}
	if workers < 1 {
		workers = 1
	}
	results := make([]combat.SimResult, n)
	errs := make([]error, n)

	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	quiet := log.New(io.Discard)
	for wk := 0; wk < workers; wk++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				runSeed := util.Derive(seed, i)
				env := &combat.Env{Rng: util.New(runSeed)}
				w := combat.NewWorld(env, sc, book, combat.WithLogger(quiet))
				if err := w.Populate(); err != nil {
					errs[i] = fmt.Errorf("run %d (seed %d): %w", i, runSeed, err)
					continue
				}
				results[i] = combat.RunSingle(w, combat.RunOptionsFrom(sc.Tick, false))
				logger.Debug("run done", "worker", workerID, "job", i, "seed", runSeed, "winner", results[i].Winner)
			}
		}(wk)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	type stat struct {
		Wins       map[string]int
		SumT       float64
		SumSurvive map[combat.Faction]int
		ByArch     map[string]float64
		ByFaction  map[combat.Faction]float64
		Hits       int
		Misses     int
	}
	var st = stat{
		Wins:       map[string]int{},
		SumSurvive: map[combat.Faction]int{},
		ByArch:     map[string]float64{},
		ByFaction:  map[combat.Faction]float64{},
	}
	for _, res := range results {
		st.Wins[res.Winner]++
		st.SumT += res.Duration
		for _, f := range []combat.Faction{combat.FactionA, combat.FactionB} {
			st.SumSurvive[f] += res.Survivors[f]
			st.ByFaction[f] += res.DamageByFaction[f]
		}
		for _, id := range book.IDs() {
			if v, ok := res.DamageByArchetype[id]; ok {
				st.ByArch[id] += v
			}
		}
		st.Hits += res.Hits
		st.Misses += res.Misses
	}

	totalDmg := 0.0
	for _, id := range book.IDs() {
		totalDmg += st.ByArch[id]
	}

	share := func(v float64) map[string]any {
		ratio := 0.0
		if totalDmg > 0 {
			ratio = v / totalDmg
		}
		return map[string]any{"total": v, "ratio": ratio}
	}
	byArch := map[string]any{}
	for k, v := range st.ByArch {
		byArch[k] = share(v)
	}
	byFaction := map[string]any{}
	for k, v := range st.ByFaction {
		byFaction[k.String()] = share(v)
	}
	winRate := map[string]float64{}
	for k, v := range st.Wins {
		winRate[k] = float64(v) / float64(n)
	}
	avgSurvive := map[string]float64{}
	for k, v := range st.SumSurvive {
		avgSurvive[k.String()] = float64(v) / float64(n)
	}
	accuracy := 0.0
	if shots := st.Hits + st.Misses; shots > 0 {
		accuracy = float64(st.Hits) / float64(shots)
	}

	return map[string]any{
		"scenario":      sc.ID,
		"runs":          n,
		"seed":          seed,
		"win_rate":      winRate,
		"avg_time":      st.SumT / float64(n),
		"avg_survivors": avgSurvive,
		"hit_ratio":     accuracy,
		"total_damage":  totalDmg,
		"by_archetype":  byArch,
		"by_faction":    byFaction,
	}, nil
}

func writeOutput(path, format string, v any) error {
	if format == "json" {
		return os.WriteFile(path, combat.MarshalPretty(v), 0644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(f)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return f.Close()
}
