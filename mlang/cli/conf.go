package cli

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/mlang"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"gopkg.in/yaml.v3"
)

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	// We locate mlang configuration with an application-key of 'MLANG' and
	// use NestedText-format (nt) for default config-files
	konf := koanfadapter.New(k, "MLANG", []string{"nt"})
	konf.InitDefaults()
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		mlang.Exit(2)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		mlang.Exit(2)
	}
	mlang.Configuration = k // push the configuration to app-global scope
}

// mergeFlags merges an optional configuration file and the command line flags
// into the configuration. Flags take precedence.
func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	if fname, _ := flags.GetString("config"); fname != "" {
		if err := loadConfigFile(konf.Koanf(), fname); err != nil {
			return err
		}
	}
	err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil)
	if err != nil {
		return err
	}
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return err
}

// loadConfigFile reads a configuration file into k. The format is
// determined from the file extension, defaulting to YAML.
func loadConfigFile(k *koanf.Koanf, fname string) error {
	content, err := ioutil.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("cannot read configuration: %w", err)
	}
	data, err := parseConfig(content, filepath.Ext(fname))
	if err != nil {
		return fmt.Errorf("configuration %s: %w", fname, err)
	}
	tracing.Infof("loading configuration from %s", fname)
	return k.Load(confmap.Provider(data, "."), nil)
}

// parseConfig parses configuration content by format (file extension).
func parseConfig(content []byte, ext string) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	}
	return data, nil
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	tracing.Infof("searching for trace redirection")
	paths := locateLogFile()
	if dest := konf.GetString("tracing.destination"); dest != "" {
		if !strings.Contains(dest, ":") && paths.ConfigDir() != "" {
			dest = "file://" + paths.ConfigDir() + "/" + dest
			konf.Set("tracing.destination", dest)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Infof(rootCmd.Long)
	return nil
}

func locateLogFile() AppPaths {
	paths, err := DefaultAppPaths("MLANG")
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
	}
	return paths
}
