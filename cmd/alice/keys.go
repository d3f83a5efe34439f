package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/f3rmion/alice/session"
)

// keySummary is the public view of a stored key.
type keySummary struct {
	ID        string `yaml:"id"`
	Curve     string `yaml:"curve"`
	PublicKey string `yaml:"public_key"`
	Threshold int    `yaml:"threshold,omitempty"`
	X         string `yaml:"x,omitempty"`
}

func summarize(id string, k *session.Key) keySummary {
	s := keySummary{
		ID:        id,
		Curve:     k.Curve.String(),
		PublicKey: pointText(k.Curve, k.Public()),
	}
	if k.IsShare() {
		s.Threshold = k.Threshold
		s.X = k.X.String()
	}
	return s
}

func (a *app) keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "manage stored keys",
		Commands: []*cli.Command{
			{
				Name:      "gen",
				Usage:     "generate a random key",
				ArgsUsage: "<key-id>",
				Action:    a.keysGen,
			},
			{
				Name:      "import",
				Usage:     "import a key from stdin",
				ArgsUsage: "<key-id>",
				Action:    a.keysImport,
			},
			{
				Name:      "export",
				Usage:     "write a key to stdout",
				ArgsUsage: "<key-id>",
				Action:    a.keysExport,
			},
			{
				Name:      "list",
				Usage:     "list keys",
				ArgsUsage: "[prefix]",
				Action:    a.keysList,
			},
			{
				Name:      "rm",
				Usage:     "remove a key",
				ArgsUsage: "<key-id>",
				Action:    a.keysRemove,
			},
		},
	}
}

func (a *app) keysGen(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	cv, err := a.curve()
	if err != nil {
		return err
	}
	keys, err := a.keyring()
	if err != nil {
		return err
	}
	k, err := keys.Gen(id, cv)
	if err != nil {
		return err
	}
	return a.writeYAML(summarize(id, k))
}

func (a *app) keysImport(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	var k session.Key
	if err := a.readYAML(&k); err != nil {
		return err
	}
	keys, err := a.keyring()
	if err != nil {
		return err
	}
	if err := keys.Import(id, &k); err != nil {
		return err
	}
	return a.writeYAML(summarize(id, &k))
}

func (a *app) keysExport(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	keys, err := a.keyring()
	if err != nil {
		return err
	}
	k, err := keys.Export(id)
	if err != nil {
		return err
	}
	return a.writeYAML(k)
}

func (a *app) keysList(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return errors.New("list: expected at most one prefix")
	}
	keys, err := a.keyring()
	if err != nil {
		return err
	}
	entries, err := keys.List(c.Args().First())
	if err != nil {
		return err
	}
	out := make([]keySummary, len(entries))
	for i, e := range entries {
		out[i] = summarize(e.Key, &e.Value)
	}
	return a.writeYAML(out)
}

func (a *app) keysRemove(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	keys, err := a.keyring()
	if err != nil {
		return err
	}
	k, err := keys.Remove(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "removed %s key %s\n", k.Curve, id)
	return nil
}
