package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gp "nickandperla.net/genetic_partition"

	"github.com/BurntSushi/toml"
	"github.com/pkg/profile"
)

var (
	configPath = flag.String("config", "./config.toml", "The config file for genetic_partition tools to use. Defaults to './config.toml'")
	genCap     = flag.Uint("gen-cap", 500, "Max generations before giving up")
	threshold  = flag.Int("threshold", 1, "Convergence threshold: stop once any recorded difference falls below it (0 = disabled)")
	check      = flag.Uint("check", 10, "Generations between metric checks")
	mutate     = flag.Bool("mutate", false, "Apply the mutation operator between generations")
	stagnation = flag.Uint("stagnation", 0, "Consecutive checks with no improvement before aborting (0 = disabled)")
	seed       = flag.Int64("seed", 0, "Override the config seed (0 = keep config value)")
	profiling  = flag.Bool("profile", false, "Write a CPU profile to the working directory")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ltime)

	if *profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if *check == 0 {
		*check = 1
	}

	toolConfig := loadToolConfig(*configPath)
	if toolConfig.Run == nil {
		toolConfig.Run = gp.DefaultRunConfig()
	}
	if *seed != 0 {
		toolConfig.Run.Seed = *seed
	}

	run, err := gp.NewRunFromConfig(toolConfig.Run)
	if err != nil {
		log.Fatalf("Failed to initialize run: %v", err)
	}
	log.Printf("Instance of %d values in [%d, %d), population %d, selection %d, seed %d",
		run.Config.InstanceSize, run.Config.ValueLow, run.Config.ValueHigh,
		run.Config.PopulationSize, run.Config.SelectionCount, run.Config.Seed)

	var persist *gp.Persistence
	var record *gp.RunRecord
	if toolConfig.Persistence != nil {
		persist, err = gp.NewPersistence(toolConfig.Persistence)
		if err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
		defer persist.Shutdown()

		record, err = persist.CreateRun(run)
		if err != nil {
			log.Fatalf("Failed to persist run: %v", err)
		}
		log.Printf("Run %d created", record.ID)
	}

	outcome := "timeout"
	bestAtLastCheck := -1
	var stagnantChecks uint

LOOP:
	for gen := uint(1); gen <= *genCap; gen++ {
		generation, err := run.Step()
		if err != nil {
			log.Fatalf("Generation %d failed: %v", gen, err)
		}

		if *mutate {
			if err := run.MutatePopulation(run.Config.MutationRate); err != nil {
				log.Fatalf("Mutation pass failed: %v", err)
			}
		}

		if gen%*check == 0 || gen == *genCap {
			phenotypes, err := gp.PartitionAll(run.Population, run.Instance)
			if err != nil {
				log.Fatalf("Failed to partition generation %d: %v", generation, err)
			}
			metrics, err := gp.MeasureGeneration(run.Population, phenotypes)
			if err != nil {
				log.Fatalf("Failed to measure generation %d: %v", generation, err)
			}
			log.Printf("  Gen %d: best=%d worst=%d avg=%.1f diversity=%.1f best_ever=%d",
				generation, metrics.BestDifference, metrics.WorstDifference,
				metrics.AvgDifference, metrics.Diversity, run.BestSolution().Difference)

			if persist != nil {
				if err := persist.SaveGeneration(record, generation, metrics); err != nil {
					log.Printf("Warning: failed to persist generation %d: %v", generation, err)
				}
			}

			if *stagnation > 0 {
				best := run.BestSolution().Difference
				if bestAtLastCheck < 0 || best < bestAtLastCheck {
					bestAtLastCheck = best
					stagnantChecks = 0
				} else {
					stagnantChecks++
					if stagnantChecks >= *stagnation {
						log.Printf("Stagnation detected: no improvement in %d consecutive checks", stagnantChecks)
						outcome = "stagnant"
						break LOOP
					}
				}
			}
		}

		if *threshold > 0 {
			if converged := run.CheckConvergence(*threshold); len(converged) > 0 {
				log.Printf("Converged at generation %d: difference %d below threshold %d",
					generation, converged[0].Difference, *threshold)
				outcome = "converged"
				break LOOP
			}
		}
	}

	best := run.BestSolution()
	if best == nil {
		log.Fatalf("No solution recorded")
	}
	if persist != nil {
		if err := persist.SaveSolution(record, best); err != nil {
			log.Printf("Warning: failed to persist best solution: %v", err)
		}
	}

	fmt.Printf("Outcome: %s after %d generations\n", outcome, run.Generation-1)
	fmt.Printf("Best solution (generation %d):\n", best.Generation)
	fmt.Printf("  Subset zero (sum %d): %v\n", sum(best.SubsetZero), best.SubsetZero)
	fmt.Printf("  Subset one  (sum %d): %v\n", sum(best.SubsetOne), best.SubsetOne)
	fmt.Printf("  Difference:  %d\n", best.Difference)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func loadToolConfig(path string) gp.ToolConfig {
	var toolConfig gp.ToolConfig

	conffile, err := os.Open(path)
	if err != nil {
		log.Fatalf("Unable to load genetic_partition config: %v", err)
	}
	defer conffile.Close()

	if _, err = toml.NewDecoder(conffile).Decode(&toolConfig); err != nil {
		log.Fatalf("Failed to unmarshal tool config: %v", err)
	}
	return toolConfig
}
