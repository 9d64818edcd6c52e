// Package config holds the settings of both binaries. Values come from
// built-in defaults, then an optional YAML file, then command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"gopkg.in/yaml.v3"

	"github.com/qnkhuat/chessduel/pkg/board"
)

const (
	DefaultAddress       = ":1998"
	DefaultSSHAddress    = ":2222"
	DefaultLogPath       = "./chessterm.log"
	DefaultDialTimeout   = 10 * time.Second
	DefaultFlashDuration = 200 * time.Millisecond
	DefaultIdleTimeout   = 5 * time.Minute
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Name    string      `yaml:"name"`
	Color   board.Color `yaml:"color"`
	Address string      `yaml:"address"`

	Log  LogConfig  `yaml:"log"`
	Sync SyncConfig `yaml:"sync"`
	UI   UIConfig   `yaml:"ui"`
	SSHD SSHDConfig `yaml:"sshd"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type SyncConfig struct {
	// ReceiveTimeout of zero waits for the opponent forever.
	ReceiveTimeout time.Duration `yaml:"receive_timeout"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
}

type UIConfig struct {
	FlashDuration time.Duration `yaml:"flash_duration"`
	Theme         string        `yaml:"theme"`
}

type SSHDConfig struct {
	Addr        string        `yaml:"addr"`
	Client      string        `yaml:"client"`
	HostKey     string        `yaml:"host_key"`
	// ClientLog is handed to every spawned client as -log. Empty disables it.
	ClientLog   string        `yaml:"client_log"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

func Default() *Config {
	return &Config{
		Name:    petname.Generate(2, "-"),
		Color:   board.White,
		Address: DefaultAddress,
		Log: LogConfig{
			Path:  DefaultLogPath,
			Level: "info",
		},
		Sync: SyncConfig{
			DialTimeout: DefaultDialTimeout,
		},
		UI: UIConfig{
			FlashDuration: DefaultFlashDuration,
			Theme:         "basic",
		},
		SSHD: SSHDConfig{
			Addr:        DefaultSSHAddress,
			Client:      "chessterm",
			IdleTimeout: DefaultIdleTimeout,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidConfig)
	case c.Sync.ReceiveTimeout < 0:
		return fmt.Errorf("%w: sync.receive_timeout is negative", ErrInvalidConfig)
	case c.Sync.DialTimeout < 0:
		return fmt.Errorf("%w: sync.dial_timeout is negative", ErrInvalidConfig)
	case c.UI.FlashDuration < 0:
		return fmt.Errorf("%w: ui.flash_duration is negative", ErrInvalidConfig)
	}
	return nil
}

// Program selects which flags Parse registers.
type Program int

const (
	Client Program = iota
	SSHD
)

// Parse registers the flags of prog on fs, parses args, loads the file
// named by -config and applies every flag the user set explicitly.
func Parse(fs *flag.FlagSet, args []string, prog Program) (*Config, error) {
	var (
		path     = fs.String("config", "", "path to YAML config file")
		logPath  = fs.String("log", DefaultLogPath, "path to log file, empty to disable")
		logLevel = fs.String("log-level", "info", "log level: debug, info, warn, error")
	)

	var (
		name, color, receive, flash *string
		addr, client, hostKey       *string
	)
	switch prog {
	case Client:
		name = fs.String("name", "", "nickname shown to the opponent")
		color = fs.String("color", "white", "color played when hosting")
		receive = fs.String("receive-timeout", "0s", "give up waiting for the opponent after this long, 0 waits forever")
		flash = fs.String("flash", DefaultFlashDuration.String(), "how long invalid input is flashed")
	case SSHD:
		addr = fs.String("addr", DefaultSSHAddress, "address the SSH server listens on")
		client = fs.String("client", "chessterm", "path of the client binary started per session")
		hostKey = fs.String("hostkey", "", "PEM host key, empty for a fresh key on every start")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return nil, err
	}

	var ferr error
	fs.Visit(func(f *flag.Flag) {
		if ferr != nil {
			return
		}
		switch f.Name {
		case "log":
			cfg.Log.Path = *logPath
		case "log-level":
			cfg.Log.Level = *logLevel
		case "name":
			cfg.Name = *name
		case "color":
			cfg.Color, ferr = board.ParseColor(*color)
		case "receive-timeout":
			cfg.Sync.ReceiveTimeout, ferr = time.ParseDuration(*receive)
		case "flash":
			cfg.UI.FlashDuration, ferr = time.ParseDuration(*flash)
		case "addr":
			cfg.SSHD.Addr = *addr
		case "client":
			cfg.SSHD.Client = *client
		case "hostkey":
			cfg.SSHD.HostKey = *hostKey
		}
		if ferr != nil {
			ferr = fmt.Errorf("%w: -%s: %v", ErrInvalidConfig, f.Name, ferr)
		}
	})
	if ferr != nil {
		return nil, ferr
	}
	return cfg, cfg.Validate()
}
