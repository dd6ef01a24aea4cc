package genetic_partition

// ToolConfig is the top-level TOML config shared by the cmd tools.
type ToolConfig struct {
	Persistence *PersistenceConfig `toml:"persistence"`
	Run         *RunConfig         `toml:"run"`
}
