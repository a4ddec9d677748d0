// Command keygen generates a PS signing/verification key pair and
// writes it as JSON to stdout, or to a file given with --output.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/anupsv/ps-signatures/pkg/core"
)

type serializedKeyPair struct {
	Label        string `json:"label"`
	MessageCount int    `json:"messageCount"`
	Sigkey       string `json:"sigkey"`
	Verkey       string `json:"verkey"`
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	app := &cli.App{
		Name:  "keygen",
		Usage: "generate a PS signature key pair",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "messages",
				Value: 5,
				Usage: "number of messages the key pair supports",
			},
			&cli.StringFlag{
				Name:  "label",
				Value: "ps-signatures-default-params",
				Usage: "domain label used to derive the scheme's generators",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "file to write the key pair to (defaults to stdout)",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, sugar)
		},
	}

	if err := app.Run(os.Args); err != nil {
		sugar.Errorw("keygen failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context, sugar *zap.SugaredLogger) error {
	n := c.Int("messages")
	label := c.String("label")

	sugar.Infow("deriving params", "label", label)
	params, err := core.NewParams([]byte(label))
	if err != nil {
		return fmt.Errorf("deriving params: %w", err)
	}

	sugar.Infow("generating key pair", "messageCount", n)
	sk, vk, err := core.Keygen(n, params, rand.Reader)
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}
	if err := vk.Validate(); err != nil {
		return fmt.Errorf("generated verkey failed validation: %w", err)
	}

	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serializing sigkey: %w", err)
	}
	vkBytes, err := vk.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serializing verkey: %w", err)
	}

	out := serializedKeyPair{
		Label:        label,
		MessageCount: n,
		Sigkey:       base64.StdEncoding.EncodeToString(skBytes),
		Verkey:       base64.StdEncoding.EncodeToString(vkBytes),
	}

	jsonData, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	if output := c.String("output"); output != "" {
		if err := os.WriteFile(output, jsonData, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		sugar.Infow("key pair written", "path", output)
		return nil
	}

	fmt.Println(string(jsonData))
	return nil
}
