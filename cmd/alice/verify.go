package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/f3rmion/alice/dkls"
	"github.com/f3rmion/alice/schnorr"
	"github.com/f3rmion/alice/transcript"
)

var errInvalidSignature = errors.New("invalid signature")

type schnorrInput struct {
	Curve      string                 `yaml:"curve"`
	Transcript *transcript.Transcript `yaml:"transcript"`
	Y          string                 `yaml:"y"`
	R          string                 `yaml:"r"`
	Z          string                 `yaml:"z"`
}

type ecdsaInput struct {
	Curve  string `yaml:"curve"`
	Y      string `yaml:"y"`
	Digest string `yaml:"digest"` // hex message digest
	R      string `yaml:"r"`
	S      string `yaml:"s"`
}

func (a *app) verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "verify signatures",
		Commands: []*cli.Command{
			{
				Name:   "schnorr",
				Usage:  "verify a Schnorr signature over a transcript (reads curve, transcript, y, r, z)",
				Action: a.verifySchnorr,
			},
			{
				Name:   "ecdsa",
				Usage:  "verify an ECDSA signature (reads curve, y, digest, r, s)",
				Action: a.verifyECDSA,
			},
		},
	}
}

func (a *app) verifySchnorr(ctx context.Context, c *cli.Command) error {
	var in schnorrInput
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
	y, err := parsePoint(cv, in.Y, "y")
	if err != nil {
		return err
	}
	r, err := parsePoint(cv, in.R, "r")
	if err != nil {
		return err
	}
	z, err := parseScalar(cv, in.Z, "z")
	if err != nil {
		return err
	}

	if !schnorr.VerifySignature(cv.Group(), t, y, r, z) {
		return errInvalidSignature
	}
	fmt.Fprintln(a.stdout, "valid")
	return nil
}

func (a *app) verifyECDSA(ctx context.Context, c *cli.Command) error {
	var in ecdsaInput
	if err := a.readYAML(&in); err != nil {
		return err
	}
	cv, err := a.curveOf(in.Curve)
	if err != nil {
		return err
	}
	g := cv.Group()
	y, err := parsePoint(cv, in.Y, "y")
	if err != nil {
		return err
	}
	digest, err := hex.DecodeString(in.Digest)
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	r, err := parseScalar(cv, in.R, "r")
	if err != nil {
		return err
	}
	s, err := parseScalar(cv, in.S, "s")
	if err != nil {
		return err
	}

	if !dkls.Verify(g, y, g.ReduceScalar(digest), &dkls.Signature{R: r, S: s}) {
		return errInvalidSignature
	}
	fmt.Fprintln(a.stdout, "valid")
	return nil
}
