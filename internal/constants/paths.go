package constants

// DefaultConfigPath is the default path to the config.toml file
const DefaultConfigPath = "./config.toml"

// DefaultWorkspace is the default workspace directory for papers, summaries
// and the run log
const DefaultWorkspace = "~/.paperbot"
