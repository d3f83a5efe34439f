package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/frost"
	"github.com/f3rmion/alice/session"
	"github.com/f3rmion/alice/transcript"
)

type commitmentYAML struct {
	D string `yaml:"d"`
	E string `yaml:"e"`
}

type signerYAML struct {
	X string `yaml:"x"`
	D string `yaml:"d"`
	E string `yaml:"e"`
}

type shardYAML struct {
	Y string `yaml:"y"`
	R string `yaml:"r"`
	Z string `yaml:"z"`
}

type signInput struct {
	Transcript *transcript.Transcript `yaml:"transcript"`
	Signers    []signerYAML           `yaml:"signers"`
}

type aggregateShardsInput struct {
	Curve      string                 `yaml:"curve"`
	Transcript *transcript.Transcript `yaml:"transcript"`
	Signers    []signerYAML           `yaml:"signers"`
	Shards     []shardYAML            `yaml:"shards"`
}

func commitmentsText(id curve.ID, cs []frost.Commitment) []commitmentYAML {
	out := make([]commitmentYAML, len(cs))
	for i, c := range cs {
		out[i] = commitmentYAML{D: pointText(id, c.D), E: pointText(id, c.E)}
	}
	return out
}

func parseSigners(id curve.ID, in []signerYAML) ([]session.Signer, error) {
	out := make([]session.Signer, len(in))
	for i, s := range in {
		field := fmt.Sprintf("signers[%d]", i)
		x, err := parseScalar(id, s.X, field+".x")
		if err != nil {
			return nil, err
		}
		d, err := parsePoint(id, s.D, field+".d")
		if err != nil {
			return nil, err
		}
		e, err := parsePoint(id, s.E, field+".e")
		if err != nil {
			return nil, err
		}
		out[i] = session.Signer{X: x, Commitment: frost.Commitment{D: d, E: e}}
	}
	return out, nil
}

func parseShard(id curve.ID, in shardYAML, field string) (*frost.Shard, error) {
	y, err := parsePoint(id, in.Y, field+".y")
	if err != nil {
		return nil, err
	}
	r, err := parsePoint(id, in.R, field+".r")
	if err != nil {
		return nil, err
	}
	z, err := parseScalar(id, in.Z, field+".z")
	if err != nil {
		return nil, err
	}
	return &frost.Shard{Y: y, R: r, Z: z}, nil
}

func (a *app) frostCommand() *cli.Command {
	return &cli.Command{
		Name:  "frost",
		Usage: "FROST threshold Schnorr signing",
		Commands: []*cli.Command{
			{
				Name:      "prepare",
				Usage:     "generate nonces and print their commitments",
				ArgsUsage: "<key-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "number of nonces"},
				},
				Action: a.frostPrepare,
			},
			{
				Name:      "nonces",
				Usage:     "list the commitments of unused nonces",
				ArgsUsage: "<key-id>",
				Action:    a.frostNonces,
			},
			{
				Name:      "count",
				Usage:     "print the number of unused nonces",
				ArgsUsage: "<key-id>",
				Action:    a.frostCount,
			},
			{
				Name:      "discard",
				Usage:     "drop the nonce of a commitment (reads d and e)",
				ArgsUsage: "<key-id>",
				Action:    a.frostDiscard,
			},
			{
				Name:      "sign",
				Usage:     "sign a transcript with a key share (reads transcript and signers)",
				ArgsUsage: "<key-id>",
				Action:    a.frostSign,
			},
			{
				Name:   "aggregate",
				Usage:  "combine signature shards (reads curve, transcript, signers and shards)",
				Action: a.frostAggregate,
			},
		},
	}
}

func (a *app) frostPrepare(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	count := c.Int("count")
	if count < 1 {
		return fmt.Errorf("prepare: count must be positive")
	}
	f, keys, err := a.frost()
	if err != nil {
		return err
	}
	k, err := keys.Export(id)
	if err != nil {
		return err
	}
	commitments, err := f.Prepare(id, count)
	if err != nil {
		return err
	}
	return a.writeYAML(commitmentsText(k.Curve, commitments))
}

func (a *app) frostNonces(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	f, keys, err := a.frost()
	if err != nil {
		return err
	}
	k, err := keys.Export(id)
	if err != nil {
		return err
	}
	commitments, err := f.List(id)
	if err != nil {
		return err
	}
	return a.writeYAML(commitmentsText(k.Curve, commitments))
}

func (a *app) frostCount(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	f, _, err := a.frost()
	if err != nil {
		return err
	}
	commitments, err := f.List(id)
	if err != nil {
		return err
	}
	return a.writeYAML(map[string]int{"count": len(commitments)})
}

func (a *app) frostDiscard(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	f, keys, err := a.frost()
	if err != nil {
		return err
	}
	k, err := keys.Export(id)
	if err != nil {
		return err
	}
	var in commitmentYAML
	if err := a.readYAML(&in); err != nil {
		return err
	}
	d, err := parsePoint(k.Curve, in.D, "d")
	if err != nil {
		return err
	}
	e, err := parsePoint(k.Curve, in.E, "e")
	if err != nil {
		return err
	}
	return f.Discard(id, frost.Commitment{D: d, E: e})
}

func (a *app) frostSign(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	f, keys, err := a.frost()
	if err != nil {
		return err
	}
	k, err := keys.Export(id)
	if err != nil {
		return err
	}

	var in signInput
	if err := a.readYAML(&in); err != nil {
		return err
	}
	t, err := a.transcript(in.Transcript)
	if err != nil {
		return err
	}
	signers, err := parseSigners(k.Curve, in.Signers)
	if err != nil {
		return err
	}

	shard, err := f.Sign(id, t, signers)
	if err != nil {
		return err
	}
	return a.writeYAML(shardYAML{
		Y: pointText(k.Curve, shard.Y),
		R: pointText(k.Curve, shard.R),
		Z: scalarText(k.Curve, shard.Z),
	})
}

func (a *app) frostAggregate(ctx context.Context, c *cli.Command) error {
	var in aggregateShardsInput
	if err := a.readYAML(&in); err != nil {
		return err
	}
	cv, err := a.curveOf(in.Curve)
	if err != nil {
		return err
	}
	t, err := a.transcript(in.Transcript)
	if err != nil {
		return err
	}
	signers, err := parseSigners(cv, in.Signers)
	if err != nil {
		return err
	}
	shards := make([]*frost.Shard, len(in.Shards))
	for i, s := range in.Shards {
		if shards[i], err = parseShard(cv, s, fmt.Sprintf("shards[%d]", i)); err != nil {
			return err
		}
	}

	sig, err := session.Aggregate(cv, t, signers, shards)
	if err != nil {
		return err
	}
	return a.writeYAML(shardYAML{
		Y: pointText(cv, sig.Y),
		R: pointText(cv, sig.R),
		Z: scalarText(cv, sig.Z),
	})
}
