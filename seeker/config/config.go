package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"time"

	internal "github.com/ZanzyTHEbar/file-seeker/seeker"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filter"

	"github.com/spf13/viper"
)

// Time limit modes accepted in the settings file.
const (
	TimeModeRelative = "relative"
	TimeModeAbsolute = "absolute"
)

// Settings is the persisted search configuration.
// The values are read by viper from a settings file or SEEKER_* environment variables.
type Settings struct {
	SearchHiddenFiles   bool `mapstructure:"search_hidden_files" yaml:"search_hidden_files"`
	SearchHiddenFolders bool `mapstructure:"search_hidden_folders" yaml:"search_hidden_folders"`
	SearchReadOnly      bool `mapstructure:"search_readonly" yaml:"search_readonly"`
	SearchSystemFiles   bool `mapstructure:"search_system_files" yaml:"search_system_files"`

	MinFileSize uint64 `mapstructure:"min_file_size" yaml:"min_file_size"`
	MaxFileSize uint64 `mapstructure:"max_file_size" yaml:"max_file_size"`

	TimeLimitEnabled        bool   `mapstructure:"time_limit_enabled" yaml:"time_limit_enabled"`
	TimeLimitMode           string `mapstructure:"time_limit_mode" yaml:"time_limit_mode"`
	RelativeDurationSeconds uint64 `mapstructure:"relative_duration_seconds" yaml:"relative_duration_seconds"`
	RelativeNewer           bool   `mapstructure:"relative_newer" yaml:"relative_newer"`
	AbsoluteMinTimestamp    uint64 `mapstructure:"absolute_min_timestamp" yaml:"absolute_min_timestamp"`
	AbsoluteMaxTimestamp    uint64 `mapstructure:"absolute_max_timestamp" yaml:"absolute_max_timestamp"` // 0 means no upper bound

	SaveHash          bool   `mapstructure:"save_hash" yaml:"save_hash"`
	RegexContainsPath bool   `mapstructure:"regex_contains_path" yaml:"regex_contains_path"`
	SearchDepth       int    `mapstructure:"search_depth" yaml:"search_depth"`
	FilePattern       string `mapstructure:"file_pattern" yaml:"file_pattern"`
	Workers           int    `mapstructure:"workers" yaml:"workers"` // 0 picks a default from the CPU count
}

// settingsKeys lists every key in file order; SaveSettings writes them all.
var settingsKeys = []string{
	"search_hidden_files",
	"search_hidden_folders",
	"search_readonly",
	"search_system_files",
	"min_file_size",
	"max_file_size",
	"time_limit_enabled",
	"time_limit_mode",
	"relative_duration_seconds",
	"relative_newer",
	"absolute_min_timestamp",
	"absolute_max_timestamp",
	"save_hash",
	"regex_contains_path",
	"search_depth",
	"file_pattern",
	"workers",
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		SearchHiddenFiles:   true,
		SearchHiddenFolders: false,
		SearchReadOnly:      false,
		SearchSystemFiles:   false,
		MinFileSize:         0,
		MaxFileSize:         1 << 30,
		TimeLimitEnabled:    false,
		TimeLimitMode:       TimeModeRelative,
		RelativeNewer:       true,
		SearchDepth:         internal.DefaultSearchDepth,
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	d := DefaultSettings()
	v.SetDefault("search_hidden_files", d.SearchHiddenFiles)
	v.SetDefault("search_hidden_folders", d.SearchHiddenFolders)
	v.SetDefault("search_readonly", d.SearchReadOnly)
	v.SetDefault("search_system_files", d.SearchSystemFiles)
	v.SetDefault("min_file_size", d.MinFileSize)
	v.SetDefault("max_file_size", d.MaxFileSize)
	v.SetDefault("time_limit_enabled", d.TimeLimitEnabled)
	v.SetDefault("time_limit_mode", d.TimeLimitMode)
	v.SetDefault("relative_duration_seconds", d.RelativeDurationSeconds)
	v.SetDefault("relative_newer", d.RelativeNewer)
	v.SetDefault("absolute_min_timestamp", d.AbsoluteMinTimestamp)
	v.SetDefault("absolute_max_timestamp", d.AbsoluteMaxTimestamp)
	v.SetDefault("save_hash", d.SaveHash)
	v.SetDefault("regex_contains_path", d.RegexContainsPath)
	v.SetDefault("search_depth", d.SearchDepth)
	v.SetDefault("file_pattern", d.FilePattern)
	v.SetDefault("workers", d.Workers)

	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadSettings reads settings from path, or from the default location when
// path is empty. A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		path = internal.DefaultConfigFile
	}

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings writes s to path. The format follows the file extension.
func SaveSettings(path string, s *Settings) error {
	if path == "" {
		path = internal.DefaultConfigFile
	}
	if err := s.Validate(); err != nil {
		return err
	}

	v := viper.New()
	values := map[string]any{
		"search_hidden_files":       s.SearchHiddenFiles,
		"search_hidden_folders":     s.SearchHiddenFolders,
		"search_readonly":           s.SearchReadOnly,
		"search_system_files":       s.SearchSystemFiles,
		"min_file_size":             s.MinFileSize,
		"max_file_size":             s.MaxFileSize,
		"time_limit_enabled":        s.TimeLimitEnabled,
		"time_limit_mode":           s.TimeLimitMode,
		"relative_duration_seconds": s.RelativeDurationSeconds,
		"relative_newer":            s.RelativeNewer,
		"absolute_min_timestamp":    s.AbsoluteMinTimestamp,
		"absolute_max_timestamp":    s.AbsoluteMaxTimestamp,
		"save_hash":                 s.SaveHash,
		"regex_contains_path":       s.RegexContainsPath,
		"search_depth":              s.SearchDepth,
		"file_pattern":              s.FilePattern,
		"workers":                   s.Workers,
	}
	for _, key := range settingsKeys {
		v.Set(key, values[key])
	}

	return common.WithFileLock(path, func() error {
		if err := v.WriteConfigAs(path); err != nil {
			return fmt.Errorf("failed to write settings file: %w", err)
		}
		return nil
	})
}

// Validate checks the fields that cannot be expressed as criteria.
func (s *Settings) Validate() error {
	var errs []error
	if s.SearchDepth < 0 || s.SearchDepth > math.MaxUint8 {
		errs = append(errs, common.NewConfigError("search_depth",
			fmt.Errorf("%w: %d", common.ErrDepthOutOfRange, s.SearchDepth)))
	}
	if s.TimeLimitMode != TimeModeRelative && s.TimeLimitMode != TimeModeAbsolute {
		errs = append(errs, common.NewConfigError("time_limit_mode",
			fmt.Errorf("%w: %q", common.ErrUnknownTimeMode, s.TimeLimitMode)))
	}
	if s.Workers < 0 {
		errs = append(errs, common.NewConfigError("workers", fmt.Errorf("must not be negative: %d", s.Workers)))
	}
	return errors.Join(errs...)
}

// Criteria builds the immutable search criteria these settings describe.
// now anchors relative time limits.
func (s *Settings) Criteria(now time.Time) (*filter.Criteria, error) {
	b, err := s.Builder(now)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Builder returns a criteria builder preloaded from the settings so callers
// can override individual fields before building.
func (s *Settings) Builder(now time.Time) (*filter.Builder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	target := filter.TargetName
	if s.RegexContainsPath {
		target = filter.TargetPath
	}

	b := filter.NewBuilder().
		WithClock(func() time.Time { return now }).
		IncludeHiddenFiles(s.SearchHiddenFiles).
		IncludeHiddenFolders(s.SearchHiddenFolders).
		IncludeReadOnly(s.SearchReadOnly).
		IncludeSystem(s.SearchSystemFiles).
		SizeRange(s.MinFileSize, s.MaxFileSize).
		HashContent(s.SaveHash).
		Pattern(s.FilePattern, target)

	switch {
	case !s.TimeLimitEnabled:
		b.NoTimeLimit()
	case s.TimeLimitMode == TimeModeRelative:
		polarity := filter.PolarityOlder
		if s.RelativeNewer {
			polarity = filter.PolarityNewer
		}
		d := time.Duration(math.MaxInt64)
		if s.RelativeDurationSeconds < uint64(math.MaxInt64/int64(time.Second)) {
			d = time.Duration(s.RelativeDurationSeconds) * time.Second
		}
		b.RelativeTime(d, polarity)
	default:
		maxTs := s.AbsoluteMaxTimestamp
		if maxTs == 0 {
			maxTs = math.MaxUint64
		}
		b.AbsoluteTimestamps(s.AbsoluteMinTimestamp, maxTs)
	}

	return b, nil
}
