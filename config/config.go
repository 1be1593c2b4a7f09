package config

import (
	"net"
	"os"
	"time"

	"gorange/ranges"
	"gorange/store"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	MySQL   MySQL   `yaml:"mysql"`
	Redis   Redis   `yaml:"redis"`
	Segment Segment `yaml:"segment"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

type MySQL struct {
	DSN         string `yaml:"dsn"`
	Table       string `yaml:"table"`
	KeyColumn   string `yaml:"key_column"`
	ValueColumn string `yaml:"value_column"`
}

func (m MySQL) Store() store.Config {
	return store.Config{
		DSN:         m.DSN,
		Table:       m.Table,
		KeyColumn:   m.KeyColumn,
		ValueColumn: m.ValueColumn,
	}
}

type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Segment is the key span served by the tree.
type Segment struct {
	Begin        int64 `yaml:"begin"`
	End          int64 `yaml:"end"`
	ExcludeBegin bool  `yaml:"exclude_begin"`
	ExcludeEnd   bool  `yaml:"exclude_end"`
}

func (s Segment) Span() ranges.Range[int64] {
	return ranges.NewWithOptions(s.Begin, s.End, ranges.Options{
		ExcludeBegin: s.ExcludeBegin,
		ExcludeEnd:   s.ExcludeEnd,
	})
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr: "localhost:7890",
		},
		MySQL: MySQL{
			DSN:         "gaux:dontenter@/segment",
			Table:       "Basic",
			KeyColumn:   "ID",
			ValueColumn: "Value",
		},
		Redis: Redis{
			Addr: "localhost:6379",
		},
		Segment: Segment{
			Begin: 1,
			End:   20,
		},
	}
}

// Load reads the yaml file at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.HTTP.Addr); err != nil {
		return errors.Wrap(err, "http.addr")
	}

	if _, _, err := net.SplitHostPort(c.Redis.Addr); err != nil {
		return errors.Wrap(err, "redis.addr")
	}

	if c.Redis.TTL < 0 {
		return errors.Errorf("redis.ttl: negative duration %s", c.Redis.TTL)
	}

	if _, err := mysql.ParseDSN(c.MySQL.DSN); err != nil {
		return errors.Wrap(err, "mysql.dsn")
	}

	if err := c.MySQL.Store().Validate(); err != nil {
		return errors.Wrap(err, "mysql")
	}

	span := c.Segment.Span()
	if span.Begin() > span.End() {
		return errors.Errorf("segment: begin %d is after end %d", span.Begin(), span.End())
	}

	return nil
}
