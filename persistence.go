package genetic_partition

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	cp "github.com/jinzhu/copier"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// RunRecord is the persisted form of a Run: the seed, a snapshot of the
// config, and the drawn instance values.
type RunRecord struct {
	ID       uint
	Seed     int64
	Config   *RunConfig `gorm:"embedded;embeddedPrefix:config_"`
	Instance []byte     `gorm:"type:blob"`

	Generations []*GenerationRecord
	Solutions   []*SolutionRecord
}

// GenerationRecord stores one generation's aggregate metrics.
type GenerationRecord struct {
	ID          uint
	RunRecordID uint
	Index       uint
	BestDiff    int
	WorstDiff   int
	AvgDiff     float64
	Diversity   float64
}

// SolutionRecord stores a candidate solution: the subsets, their sum
// difference, and the genotype that produced them.
type SolutionRecord struct {
	ID          uint
	RunRecordID uint
	Generation  uint
	Difference  int
	SubsetZero  []byte `gorm:"type:blob"`
	SubsetOne   []byte `gorm:"type:blob"`
	Gene        string
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: persistence config cannot be nil", ErrInvalidConfiguration)
	}
	if len(config.Path) == 0 {
		return nil, fmt.Errorf("%w: path to database must be defined", ErrInvalidConfiguration)
	}
	if len(config.Name) == 0 {
		return nil, fmt.Errorf("%w: name of database must be defined", ErrInvalidConfiguration)
	}

	var pragmas strings.Builder
	pragma_count := len(config.SQLitePragmas) - 1
	for i, prag := range config.SQLitePragmas {
		pragmas.WriteString(fmt.Sprintf("_pragma=%s", prag))
		if i < pragma_count {
			pragmas.WriteRune('&')
		}
	}

	var options strings.Builder
	option_count := len(config.SQLiteOptions) - 1
	for i, opt := range config.SQLiteOptions {
		options.WriteString(opt)
		if i < option_count {
			options.WriteRune('&')
		}
	}

	var path strings.Builder
	path.WriteString(filepath.Join(config.Path, config.Name))
	if pragmas.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(pragmas.String())
		if options.Len() > 0 {
			path.WriteRune('&')
			path.WriteString(options.String())
		}
	} else if options.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(options.String())
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&RunRecord{},
		&GenerationRecord{},
		&SolutionRecord{},
	)
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

// CreateRun persists a new run with a snapshot of its config and
// instance. The snapshot is decoupled from the live run, so later config
// mutation never leaks into history.
func (p *Persistence) CreateRun(run *Run) (*RunRecord, error) {
	if run == nil {
		return nil, fmt.Errorf("%w: run cannot be nil", ErrInvalidConfiguration)
	}

	snapshot := &RunConfig{}
	cp.Copy(snapshot, run.Config)

	instance, err := json.Marshal(run.Instance.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode instance: %w", err)
	}

	record := &RunRecord{
		Seed:     run.Config.Seed,
		Config:   snapshot,
		Instance: instance,
	}
	if result := p.DB.Create(record); result.Error != nil {
		return nil, fmt.Errorf("failed to persist run: %w", result.Error)
	}
	return record, nil
}

func (p *Persistence) SaveGeneration(record *RunRecord, index uint, m *GenerationMetrics) error {
	gen := &GenerationRecord{
		RunRecordID: record.ID,
		Index:       index,
		BestDiff:    m.BestDifference,
		WorstDiff:   m.WorstDifference,
		AvgDiff:     m.AvgDifference,
		Diversity:   m.Diversity,
	}
	if result := p.DB.Create(gen); result.Error != nil {
		return fmt.Errorf("failed to persist generation %d: %w", index, result.Error)
	}
	return nil
}

func (p *Persistence) SaveSolution(record *RunRecord, s *Solution) error {
	zero, err := json.Marshal(s.SubsetZero)
	if err != nil {
		return fmt.Errorf("failed to encode subset zero: %w", err)
	}
	one, err := json.Marshal(s.SubsetOne)
	if err != nil {
		return fmt.Errorf("failed to encode subset one: %w", err)
	}

	sol := &SolutionRecord{
		RunRecordID: record.ID,
		Generation:  s.Generation,
		Difference:  s.Difference,
		SubsetZero:  zero,
		SubsetOne:   one,
		Gene:        s.Gene.String(),
	}
	if result := p.DB.Create(sol); result.Error != nil {
		return fmt.Errorf("failed to persist solution: %w", result.Error)
	}
	return nil
}

func (p *Persistence) LoadRun(id uint) (*RunRecord, error) {
	record := &RunRecord{}
	result := p.DB.Preload("Generations").Preload("Solutions").First(record, id)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, result.Error)
	}
	return record, nil
}

func (p *Persistence) ListRuns() ([]*RunRecord, error) {
	var records []*RunRecord
	if result := p.DB.Find(&records); result.Error != nil {
		return nil, fmt.Errorf("failed to list runs: %w", result.Error)
	}
	return records, nil
}

// BestSolution returns the smallest-difference solution recorded for a
// run, or nil when none have been saved.
func (p *Persistence) BestSolution(runID uint) (*SolutionRecord, error) {
	var solutions []*SolutionRecord
	result := p.DB.Where("run_record_id = ?", runID).
		Order("difference asc").Limit(1).Find(&solutions)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query best solution: %w", result.Error)
	}
	if len(solutions) == 0 {
		return nil, nil
	}
	return solutions[0], nil
}

// DecodeSubsets unpacks the persisted subsets of a solution record.
func (sr *SolutionRecord) DecodeSubsets() (zero []int, one []int, err error) {
	if err = json.Unmarshal(sr.SubsetZero, &zero); err != nil {
		return nil, nil, fmt.Errorf("failed to decode subset zero: %w", err)
	}
	if err = json.Unmarshal(sr.SubsetOne, &one); err != nil {
		return nil, nil, fmt.Errorf("failed to decode subset one: %w", err)
	}
	return zero, one, nil
}
