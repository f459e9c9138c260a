// Package config loads the application's YAML configuration, expanding
// ${VAR} / $VAR / ${VAR:-default} environment-variable references before
// unmarshaling. Grounded on the teacher's internal/config package (whose
// config.go was not part of the retrieved pack, but whose
// config_test.go fully specifies expandEnvVars's behavior, preserved
// here verbatim) using the same gopkg.in/yaml.v2 loader.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// StoreConfig configures the corpus store connection (spec.md §4.A/§6).
type StoreConfig struct {
	URI         string `yaml:"uri"`
	Keyspace    string `yaml:"keyspace"`
	Consistency string `yaml:"consistency"`
}

// PredictorConfig selects the ranking function the server exposes for
// check-text (spec.md §4.I, "the predictor is selected by server
// configuration").
type PredictorConfig struct {
	RankingFunction string  `yaml:"ranking_function"` // "max", "sum", "power_sum"
	Alpha           float64 `yaml:"alpha"`            // only used by power_sum
}

// CorpusConfig names the on-disk files loaded into internal/corpus at
// startup (spec.md §6).
type CorpusConfig struct {
	ConfusionSetFile        string `yaml:"confusion_set_file"`
	NGramCountsFile         string `yaml:"number_of_ngrams_file"`
	DistinctNGramCountsFile string `yaml:"number_of_distinct_ngrams_file"`
}

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Predictor PredictorConfig `yaml:"predictor"`
	Corpus    CorpusConfig    `yaml:"corpus"`
}

// Load reads and parses the YAML config at path, expanding environment
// variables first, then overlaying the individual env vars spec.md §6
// documents as always-overridable (HOST, PORT, SCYLLA_URI).
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides lets bare environment variables win over whatever the
// YAML file (after its own expansion) settled on, matching spec.md §6's
// "HOST, PORT" / "SCYLLA_URI" direct env-var reads.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("SCYLLA_URI"); v != "" {
		cfg.Store.URI = v
	}
	if v := os.Getenv("CONFUSION_SET_FILE"); v != "" {
		cfg.Corpus.ConfusionSetFile = v
	}
	if v := os.Getenv("NUMBER_OF_NGRAMS_FILE"); v != "" {
		cfg.Corpus.NGramCountsFile = v
	}
	if v := os.Getenv("NUMBER_OF_DISTINCT_NGRAMS_FILE"); v != "" {
		cfg.Corpus.DistinctNGramCountsFile = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Store.URI == "" {
		cfg.Store.URI = "127.0.0.1:9042"
	}
	if cfg.Store.Keyspace == "" {
		cfg.Store.Keyspace = "n_grams"
	}
	if cfg.Store.Consistency == "" {
		cfg.Store.Consistency = "ONE"
	}
	if cfg.Predictor.RankingFunction == "" {
		cfg.Predictor.RankingFunction = "max"
	}
}

var (
	braceVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)
	bareVarPattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars resolves ${VAR}, ${VAR:-default} and $VAR references.
// An undefined ${VAR} with no default expands to the empty string; an
// undefined $VAR is left as a literal (there's no delimiter to know
// where the name ends once it's gone, so leaving it is the only safe
// choice).
func expandEnvVars(input string) string {
	input = braceVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := braceVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := groups[1], groups[2] != "", groups[3]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		if hasDefault {
			return def
		}
		return ""
	})

	input = bareVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := match[1:]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})

	return input
}
