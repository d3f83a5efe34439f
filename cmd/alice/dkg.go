package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/f3rmion/alice/session"
)

type dealInput struct {
	Threshold int      `yaml:"threshold"`
	This      int      `yaml:"this"`
	Xs        []string `yaml:"shamir_xs"`
}

type dealEntry struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
}

type dealOutput struct {
	Commitment []string    `yaml:"commitment"`
	Deals      []dealEntry `yaml:"deals"`
}

type incomingDeal struct {
	X          string   `yaml:"x"`
	Commitment []string `yaml:"commitment"`
	Y          string   `yaml:"y"`
}

type aggregateInput struct {
	Deals []incomingDeal `yaml:"deals"`
}

func (a *app) dkgCommand() *cli.Command {
	return &cli.Command{
		Name:  "dkg",
		Usage: "distributed key generation",
		Commands: []*cli.Command{
			{
				Name:  "csi-rashi",
				Usage: "CSI-RAShi DKG with Feldman commitments",
				Commands: []*cli.Command{
					{
						Name:      "deal",
						Usage:     "start a session and deal shares (reads threshold, this and shamir_xs)",
						ArgsUsage: "<key-id>",
						Action:    a.dkgDeal,
					},
					{
						Name:      "aggregate",
						Usage:     "verify the received deals and store the key share",
						ArgsUsage: "<key-id>",
						Action:    a.dkgAggregate,
					},
					{
						Name:      "reset",
						Usage:     "discard a pending session",
						ArgsUsage: "<key-id>",
						Action:    a.dkgReset,
					},
				},
			},
		},
	}
}

func (a *app) dkgDeal(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	cv, err := a.curve()
	if err != nil {
		return err
	}
	var in dealInput
	if err := a.readYAML(&in); err != nil {
		return err
	}
	xs, err := parseScalars(cv, in.Xs, "shamir_xs")
	if err != nil {
		return err
	}

	d, err := a.dkg()
	if err != nil {
		return err
	}
	dealt, err := d.Deal(id, cv, in.Threshold, in.This, xs)
	if err != nil {
		return err
	}

	out := dealOutput{Commitment: pointsText(cv, dealt.Commitment)}
	for _, deal := range dealt.Deals {
		out.Deals = append(out.Deals, dealEntry{X: scalarText(cv, deal.X), Y: scalarText(cv, deal.Y)})
	}
	return a.writeYAML(out)
}

func (a *app) dkgAggregate(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	d, err := a.dkg()
	if err != nil {
		return err
	}
	sess, err := d.Session(id)
	if err != nil {
		return err
	}
	cv := sess.Curve

	var in aggregateInput
	if err := a.readYAML(&in); err != nil {
		return err
	}
	incoming := make([]session.IncomingDeal, len(in.Deals))
	for i, deal := range in.Deals {
		field := fmt.Sprintf("deals[%d]", i)
		x, err := parseScalar(cv, deal.X, field+".x")
		if err != nil {
			return err
		}
		y, err := parseScalar(cv, deal.Y, field+".y")
		if err != nil {
			return err
		}
		commitment, err := parsePoints(cv, deal.Commitment, field+".commitment")
		if err != nil {
			return err
		}
		incoming[i] = session.IncomingDeal{X: x, Commitment: commitment, Y: y}
	}

	k, err := d.Aggregate(id, incoming)
	if err != nil {
		return err
	}
	return a.writeYAML(summarize(id, k))
}

func (a *app) dkgReset(ctx context.Context, c *cli.Command) error {
	id, err := keyIDArg(c)
	if err != nil {
		return err
	}
	d, err := a.dkg()
	if err != nil {
		return err
	}
	ok, err := d.Reset(id)
	if err != nil {
		return err
	}
	if !ok {
		a.log.Warn().Str("key_id", id).Msg("no dkg session to reset")
	}
	return nil
}
