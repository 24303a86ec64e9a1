package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	Rounds         int
	PrometheusAddr string
	Replicas       map[string]Replica
}

// Replica describes one participant of the replica group: its
// counter slot and the local operations it performs before
// the group is synchronized.
type Replica struct {
	Index      int
	Increments int
	Decrements int
	AddItems   []string
}

// Functions

// LoadConfig takes in the path to the main config file in
// TOML syntax and places the values from the file in the
// corresponding struct.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	_, err := toml.DecodeFile(configFile, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read in TOML config file at '%s' with: %v", configFile, err)
	}

	if len(conf.Replicas) == 0 {
		return nil, fmt.Errorf("config contains no replicas")
	}

	if conf.Rounds < 1 {
		return nil, fmt.Errorf("config needs at least one synchronization round, found %d", conf.Rounds)
	}

	// Make sure every replica owns exactly one counter
	// slot inside the group.
	size := len(conf.Replicas)
	owners := make(map[int]string, size)

	for name, replica := range conf.Replicas {

		if (replica.Index < 0) || (replica.Index >= size) {
			return nil, fmt.Errorf("replica '%s' owns slot %d which is out of range for group size %d", name, replica.Index, size)
		}

		if owner, taken := owners[replica.Index]; taken {
			return nil, fmt.Errorf("replicas '%s' and '%s' both own counter slot %d", owner, name, replica.Index)
		}
		owners[replica.Index] = name
	}

	return conf, nil
}
