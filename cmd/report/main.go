package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gp "nickandperla.net/genetic_partition"

	"github.com/BurntSushi/toml"
)

var (
	configPath = flag.String("config", "./config.toml", "The config file for genetic_partition tools to use")
	runId      = flag.Uint("runid", 0, "The id of the run to report on (0 = list all runs)")
)

func main() {
	flag.Parse()

	conffile, err := os.Open(*configPath)
	if err != nil {
		log.Fatalf("Unable to load genetic_partition config: %v", err)
	}

	var toolConfig gp.ToolConfig
	if _, err = toml.NewDecoder(conffile).Decode(&toolConfig); err != nil {
		log.Fatalf("Failed to unmarshal tool config: %v", err)
	}
	conffile.Close()

	persist, err := gp.NewPersistence(toolConfig.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	if *runId == 0 {
		listRuns(persist)
		return
	}
	reportRun(persist, *runId)
}

func listRuns(persist *gp.Persistence) {
	runs, err := persist.ListRuns()
	if err != nil {
		log.Fatalf("Unable to list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Printf("Run %d: seed=%d instance=%d population=%d selection=%d\n",
			r.ID, r.Seed, r.Config.InstanceSize, r.Config.PopulationSize, r.Config.SelectionCount)
	}
}

func reportRun(persist *gp.Persistence, id uint) {
	record, err := persist.LoadRun(id)
	if err != nil {
		log.Fatalf("Unable to load run from DB: %v", err)
	}

	fmt.Printf("Run %d summary:\n", record.ID)
	fmt.Printf("  Seed:             %d\n", record.Seed)
	fmt.Printf("  Instance size:    %d\n", record.Config.InstanceSize)
	fmt.Printf("  Population size:  %d\n", record.Config.PopulationSize)
	fmt.Printf("  Checks recorded:  %d\n", len(record.Generations))
	fmt.Printf("  Solutions saved:  %d\n", len(record.Solutions))

	if len(record.Generations) > 0 {
		last := record.Generations[len(record.Generations)-1]
		fmt.Printf("  Last check:       gen=%d best=%d avg=%.1f diversity=%.1f\n",
			last.Index, last.BestDiff, last.AvgDiff, last.Diversity)
	}

	best, err := persist.BestSolution(record.ID)
	if err != nil {
		log.Fatalf("Unable to query best solution: %v", err)
	}
	if best == nil {
		fmt.Println("  No solutions recorded")
		return
	}

	zero, one, err := best.DecodeSubsets()
	if err != nil {
		log.Fatalf("Unable to decode best solution: %v", err)
	}
	fmt.Printf("Best solution (generation %d, difference %d):\n", best.Generation, best.Difference)
	fmt.Printf("  Subset zero: %v\n", zero)
	fmt.Printf("  Subset one:  %v\n", one)
	fmt.Printf("  Gene:        %s\n", best.Gene)
}
