package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config defaults.
const (
	DefaultScanOutput = "files_scan_results.json"
	DefaultSample     = 10000
	DefaultFormat     = "table"
	DefaultChatInput  = "_chat.txt"
	DefaultChatOutput = "chat_messages.json"
	DefaultSender     = "Jakob"
	DefaultKeyword    = "you"
)

// DefaultExcludes contains the directories excluded from a scan by default.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{"/usr/bin"}

//nolint:gochecknoglobals // Config constant
var allowedFormats = []string{"table", "json"}

// ScanConfig holds the resolved settings of the scan command.
type ScanConfig struct {
	Root     string
	Excludes []string
	Output   string
	Sample   int
	Top      int
	Workers  int
	DB       string
	Format   string
}

// Validate checks value ranges.
func (c ScanConfig) Validate() error {
	if !slices.Contains(allowedFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, allowedFormats)
	}

	if c.Sample < 0 {
		return errors.New("sample cannot be negative")
	}

	if c.Top < 0 {
		return errors.New("top cannot be negative")
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path cannot be empty")
	}

	return nil
}

// ChatConfig holds the resolved settings of the chat command.
type ChatConfig struct {
	Input   string
	Output  string
	Sender  string
	Keyword string
}

// Validate checks that required values are present.
func (c ChatConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.Sender) == "":
		return errors.New("sender cannot be empty")
	case strings.TrimSpace(c.Keyword) == "":
		return errors.New("keyword cannot be empty")
	case strings.TrimSpace(c.Output) == "":
		return errors.New("output path cannot be empty")
	}

	return nil
}

// loadConfig layers flags, SCANLOG_ environment variables and the optional
// config file. Keys are "<section>.<flag name>". An explicitly given config
// file must exist; the default locations are optional.
func loadConfig(flags *pflag.FlagSet, section, configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix("SCANLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var bindErr error

	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr == nil {
			bindErr = v.BindPFlag(section+"."+f.Name, f)
		}
	})

	if bindErr != nil {
		return nil, fmt.Errorf("binding flags: %w", bindErr)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		v.AddConfigPath(".")
		v.SetConfigName(".scanlog")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

func scanConfigFrom(v *viper.Viper) ScanConfig {
	return ScanConfig{
		Root:     v.GetString("scan.root"),
		Excludes: splitList(v.GetStringSlice("scan.exclude")),
		Output:   v.GetString("scan.output"),
		Sample:   v.GetInt("scan.sample"),
		Top:      v.GetInt("scan.top"),
		Workers:  v.GetInt("scan.workers"),
		DB:       v.GetString("scan.db"),
		Format:   strings.ToLower(v.GetString("scan.format")),
	}
}

// splitList splits every entry on commas, so SCANLOG_SCAN_EXCLUDE=/a,/b reads
// like the repeatable flag. Blank items are dropped.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))

	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}

	return out
}

func chatConfigFrom(v *viper.Viper) ChatConfig {
	return ChatConfig{
		Input:   v.GetString("chat.input"),
		Output:  v.GetString("chat.output"),
		Sender:  v.GetString("chat.sender"),
		Keyword: v.GetString("chat.keyword"),
	}
}
