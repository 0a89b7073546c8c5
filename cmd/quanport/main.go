package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"quanport/internal/cli"
	"quanport/internal/config"
	"quanport/internal/logic"
	"quanport/internal/svc"
)

var (
	configFile  = flag.String("f", "etc/quanport.yaml", "the config file")
	symbolsFlag = flag.String("symbols", "", "comma-separated symbols to optimize (default: configured list)")
	listFlag    = flag.String("list", "", "predefined symbol list id (e.g. finnish, tech_giants)")
	budgetFlag  = flag.Int("budget", 0, "number of assets to select (default: configured)")
	riskFlag    = flag.Float64("risk", 0.5, "risk factor in (0,1]: 1 minimizes risk, near 0 chases return")
	exactOnly   = flag.Bool("exact-only", false, "skip the variational solver")
	frontier    = flag.Bool("frontier", true, "include the efficient frontier")
	backtest    = flag.Int("backtest", 0, "backtest window in days (0 disables)")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Printf("[main] failed to load config %s: %v, using defaults", *configFile, err)
		cfg = config.Default()
	}
	for _, line := range cli.ConfigSummaryLines(cfg) {
		log.Printf("[main] %s", line)
	}

	sc, err := svc.NewServiceContext(cfg)
	if err != nil {
		log.Fatalf("[main] service context: %v", err)
	}

	symbols := resolveSymbols(sc)
	req := &logic.OptimizeRequest{
		Symbols:        symbols,
		Budget:         *budgetFlag,
		RiskFactor:     *riskFlag,
		UseVariational: !*exactOnly,
		Frontier:       *frontier,
		BacktestDays:   *backtest,
	}

	resp, err := logic.Optimize(context.Background(), sc, req)
	if err != nil {
		log.Fatalf("[main] optimize: %v", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("[main] encode response: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}

// resolveSymbols picks the requested symbols: explicit -symbols first, then a
// predefined -list, then the head of the default universe list.
func resolveSymbols(sc *svc.ServiceContext) []string {
	if *symbolsFlag != "" {
		parts := strings.Split(*symbolsFlag, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if *listFlag != "" {
		if symbols, ok := sc.Universe.List(*listFlag); ok {
			return capSymbols(symbols, sc.Config.Optimization.MaxAssets)
		}
		log.Fatalf("[main] unknown list %q", *listFlag)
	}
	return capSymbols(sc.Universe.Default, sc.Config.Optimization.MaxAssets)
}

func capSymbols(symbols []string, max int) []string {
	if len(symbols) > max {
		return symbols[:max]
	}
	return symbols
}
