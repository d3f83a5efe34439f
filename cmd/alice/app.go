package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/session"
	"github.com/f3rmion/alice/storage"
	"github.com/f3rmion/alice/transcript"
)

const envPrefix = "ALICE"

// app carries the process I/O and the resources opened for one command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v     *viper.Viper
	log   zerolog.Logger
	store *storage.Storage
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, v: viper.New()}
	defer a.close()
	return a.command().Run(ctx, args)
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "alice",
		Usage:     "threshold key management",
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "storage",
				Aliases: []string{"s"},
				Usage:   "storage directory (default $HOME/.alice)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (default <storage>/alice.yaml)",
			},
			&cli.StringFlag{
				Name:    "curve",
				Aliases: []string{"c"},
				Usage:   "curve for new keys and untagged values",
			},
			&cli.StringFlag{
				Name:  "hash-function",
				Usage: "hash function for transcripts that name none",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.keysCommand(),
			a.dkgCommand(),
			a.frostCommand(),
			a.verifyCommand(),
		},
	}
}

// before loads the configuration and sets up logging. Flags override
// environment variables, which override the config file.
func (a *app) before(ctx context.Context, c *cli.Command) (context.Context, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	a.v.SetDefault("storage", filepath.Join(home, ".alice"))
	a.v.SetDefault("curve", curve.Secp256k1.String())
	a.v.SetDefault("hash_function", string(transcript.DefaultHashFunction))
	a.v.SetDefault("log_level", "warn")
	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	for flag, key := range map[string]string{
		"storage":       "storage",
		"curve":         "curve",
		"hash-function": "hash_function",
		"log-level":     "log_level",
	} {
		if c.IsSet(flag) {
			a.v.Set(key, c.String(flag))
		}
	}

	if path := c.String("config"); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("alice")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(a.v.GetString("storage"))
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return ctx, fmt.Errorf("config: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString("log_level"))
	if err != nil {
		return ctx, fmt.Errorf("config: %w", err)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr}).Level(level).With().Timestamp().Logger()
	return ctx, nil
}

// storage opens the database on first use.
func (a *app) storage() (*storage.Storage, error) {
	if a.store != nil {
		return a.store, nil
	}
	dir := a.v.GetString("storage")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	s, err := storage.Open(filepath.Join(dir, "db"), storage.Options{Logger: a.log})
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.Error().Err(err).Msg("closing storage")
	}
	a.store = nil
}

func (a *app) sessionConfig() session.Config {
	return session.Config{Logger: &a.log}
}

func (a *app) keyring() (*session.Keyring, error) {
	s, err := a.storage()
	if err != nil {
		return nil, err
	}
	return session.NewKeyring(s, a.sessionConfig()), nil
}

func (a *app) dkg() (*session.DKG, error) {
	s, err := a.storage()
	if err != nil {
		return nil, err
	}
	return session.NewDKG(s, a.sessionConfig()), nil
}

func (a *app) frost() (*session.Frost, *session.Keyring, error) {
	s, err := a.storage()
	if err != nil {
		return nil, nil, err
	}
	return session.NewFrost(s, a.sessionConfig()), session.NewKeyring(s, a.sessionConfig()), nil
}

// curve returns the configured curve.
func (a *app) curve() (curve.ID, error) {
	return curve.Parse(a.v.GetString("curve"))
}

// transcript fills in the configured hash function when t names none.
func (a *app) transcript(t *transcript.Transcript) (*transcript.Transcript, error) {
	if t == nil {
		return nil, errors.New("missing transcript")
	}
	if t.HashFunction == "" {
		hf, err := transcript.ParseHashFunction(a.v.GetString("hash_function"))
		if err != nil {
			return nil, err
		}
		t.HashFunction = hf
	}
	return t, nil
}

// keyID returns the single positional key id argument.
func keyIDArg(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one key id", c.Name)
	}
	return c.Args().First(), nil
}
