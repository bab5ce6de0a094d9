package re2compat

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultCacheSize = 100
	DefaultMaxMem    = 8 << 20
)

// Options configure a Compiler.
type Options struct {
	// CacheSize bounds the number of compiled patterns kept.
	CacheSize int `koanf:"cache_size"`
	// MaxMem is the memory budget for automaton programs in bytes. Patterns
	// exceeding it fall back to the backtracking engine. Zero disables the
	// check.
	MaxMem int64 `koanf:"max_mem"`
	// Engine selects the automaton engine for text patterns: "stdlib" or
	// "re2". Byte patterns always use a byte oriented engine.
	Engine string `koanf:"engine"`
	// FallbackTimeout bounds a single backtracking match. Zero means no limit.
	FallbackTimeout time.Duration `koanf:"fallback_timeout"`

	// Notification is read whenever a pattern falls back. Nil means the
	// process wide setting.
	Notification *Notification `koanf:"-"`
	// Logger receives fallback warnings and cache events. Nil means the
	// global zerolog logger.
	Logger *zerolog.Logger `koanf:"-"`
}

// DefaultOptions returns the options of the package level Compiler.
func DefaultOptions() Options {
	return Options{
		CacheSize: DefaultCacheSize,
		MaxMem:    DefaultMaxMem,
		Engine:    EngineStdlib,
	}
}

// fileOptions is the TOML shape of Options.
type fileOptions struct {
	CacheSize       int               `koanf:"cache_size"`
	MaxMem          int64             `koanf:"max_mem"`
	Engine          string            `koanf:"engine"`
	FallbackTimeout time.Duration     `koanf:"fallback_timeout"`
	Notification    NotificationLevel `koanf:"notification"`
}

// LoadOptions reads Options from a TOML document. Keys that are absent keep
// their defaults. A notification key gives the resulting options their own
// Notification instead of the process wide one.
//
//	cache_size = 100
//	max_mem = 8388608
//	engine = "re2"
//	fallback_timeout = "250ms"
//	notification = "warn"
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), toml.Parser()); err != nil {
		return opts, fmt.Errorf("re2compat: loading options: %w", err)
	}

	fo := fileOptions{
		CacheSize: opts.CacheSize,
		MaxMem:    opts.MaxMem,
		Engine:    opts.Engine,
	}
	err := k.UnmarshalWithConf("", &fo, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &fo,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return opts, fmt.Errorf("re2compat: decoding options: %w", err)
	}

	opts.CacheSize = fo.CacheSize
	opts.MaxMem = fo.MaxMem
	opts.Engine = fo.Engine
	opts.FallbackTimeout = fo.FallbackTimeout
	if k.Exists("notification") {
		opts.Notification = NewNotification(fo.Notification)
	}
	return opts, opts.validate()
}

func (o Options) validate() error {
	if o.CacheSize <= 0 {
		return fmt.Errorf("re2compat: cache size must be positive, got %d", o.CacheSize)
	}
	switch o.Engine {
	case "", EngineStdlib, EngineRE2:
	default:
		return fmt.Errorf("re2compat: unknown engine %q", o.Engine)
	}
	return nil
}
