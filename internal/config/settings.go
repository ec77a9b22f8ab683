package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/remarcmij/hyf-plan/internal/fragment"
	"github.com/remarcmij/hyf-plan/internal/issue"
)

// Setting keys. Each is also a flag name, an HYF_PLAN_* environment
// variable (dashes become underscores) and a hyf-plan.yaml key.
const (
	KeyDataDir          = "data-dir"
	KeyOutDir           = "out-dir"
	KeyPlaceholders     = "placeholders"
	KeyTeachersFallback = "teachers-fallback"
)

// DefaultDataDir is the data directory used when nothing else is configured.
const DefaultDataDir = "data"

// Settings are the resolved run options.
type Settings struct {
	DataDir          string
	OutDir           string
	Placeholders     fragment.Policy
	TeachersFallback string
	// ConfigFile is the hyf-plan.yaml that was read, if any.
	ConfigFile string
}

// GeneratorOptions converts the settings for issue.NewGenerator.
func (s *Settings) GeneratorOptions() issue.Options {
	return issue.Options{
		OutDir:           s.OutDir,
		Policy:           s.Placeholders,
		TeachersFallback: s.TeachersFallback,
	}
}

// RegisterFlags adds the setting flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyDataDir, DefaultDataDir, "directory holding config/, classes/, modules/ and plans/")
	fs.String(KeyOutDir, "", "directory for the generated issue (default: current directory)")
	fs.String(KeyPlaceholders, string(fragment.PolicyKeep), "unresolved placeholders: keep, empty or error")
	fs.String(KeyTeachersFallback, issue.DefaultTeachersFallback, "teachers text for plans without teachers")
}

// EnvFiles lists the .env files LoadEnvFiles reads, in order.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}

// LoadEnvFiles loads variables from EnvFiles. Variables already in the
// environment win, and so do files earlier in the list. Missing files are
// skipped.
func LoadEnvFiles() error {
	for _, path := range EnvFiles() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves settings with precedence flag > environment > config file >
// flag default. fs must have been set up with RegisterFlags.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("HYF_PLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s config: %w", appName, err)
		}
	}

	for _, key := range []string{KeyDataDir, KeyOutDir, KeyPlaceholders, KeyTeachersFallback} {
		if flag := fs.Lookup(key); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", key, err)
			}
		}
	}

	policy, err := fragment.ParsePolicy(v.GetString(KeyPlaceholders))
	if err != nil {
		return nil, err
	}

	dataDir := v.GetString(KeyDataDir)
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	return &Settings{
		DataDir:          dataDir,
		OutDir:           v.GetString(KeyOutDir),
		Placeholders:     policy,
		TeachersFallback: v.GetString(KeyTeachersFallback),
		ConfigFile:       v.ConfigFileUsed(),
	}, nil
}
