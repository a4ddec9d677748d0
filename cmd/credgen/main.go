// Command credgen issues PS-signed credentials and derives/verifies
// selective-disclosure presentations over them.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/anupsv/ps-signatures/pkg/core"
)

// keyFile is the on-disk representation shared by the keygen, issue,
// prove and verify subcommands — whichever half of the key pair a
// given command needs.
type keyFile struct {
	Label        string `json:"label"`
	MessageCount int    `json:"messageCount"`
	Sigkey       string `json:"sigkey,omitempty"`
	Verkey       string `json:"verkey,omitempty"`
}

// credential is a signed PS credential: the ordered claim names,
// their plaintext values, and the issuer's signature over the values
// (via core.MessageFromString). ClaimNames gives message index i its
// human label; this CLI never signs raw field elements directly.
type credential struct {
	Label       string   `json:"label"`
	ClaimNames  []string `json:"claimNames"`
	ClaimValues []string `json:"claimValues"`
	Signature   string   `json:"signature"`
}

// presentationFile is a compiled selective-disclosure proof plus
// enough bookkeeping (claim names, which were revealed) for a verifier
// to check it without re-deriving the message layout out of band.
type presentationFile struct {
	Label        string            `json:"label"`
	ClaimNames   []string          `json:"claimNames"`
	Disclosed    map[string]string `json:"disclosed"`
	Presentation string            `json:"presentation"`
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
		Name:  "credgen",
		Usage: "issue and present PS-signed credentials",
		Commands: []*cli.Command{
			keygenCommand(sugar),
			issueCommand(sugar),
			verifyCommand(sugar),
			proveCommand(sugar),
			verifyProofCommand(sugar),
		},
	}

	if err := app.Run(os.Args); err != nil {
		sugar.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

func keygenCommand(sugar *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate an issuer key pair",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "messages", Value: 5, Usage: "number of claims the key pair supports"},
			&cli.StringFlag{Name: "label", Value: "ps-signatures-default-params", Usage: "domain label"},
			&cli.StringFlag{Name: "sigkey-output", Required: true, Usage: "path to write the issuer's signing key"},
			&cli.StringFlag{Name: "verkey-output", Required: true, Usage: "path to write the verification key"},
		},
		Action: func(c *cli.Context) error {
			label := c.String("label")
			n := c.Int("messages")

			params, err := core.NewParams([]byte(label))
			if err != nil {
				return fmt.Errorf("deriving params: %w", err)
			}
			sk, vk, err := core.Keygen(n, params, rand.Reader)
			if err != nil {
				return fmt.Errorf("generating key pair: %w", err)
			}

			skBytes, err := sk.MarshalBinary()
			if err != nil {
				return err
			}
			vkBytes, err := vk.MarshalBinary()
			if err != nil {
				return err
			}

			if err := writeJSON(c.String("sigkey-output"), keyFile{Label: label, MessageCount: n, Sigkey: base64.StdEncoding.EncodeToString(skBytes)}); err != nil {
				return err
			}
			if err := writeJSON(c.String("verkey-output"), keyFile{Label: label, MessageCount: n, Verkey: base64.StdEncoding.EncodeToString(vkBytes)}); err != nil {
				return err
			}
			sugar.Infow("key pair issued", "messageCount", n, "label", label)
			return nil
		},
	}
}

func issueCommand(sugar *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "issue",
		Usage: "sign a credential with claim=value pairs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sigkey", Required: true, Usage: "path to the issuer's signing key"},
			&cli.StringSliceFlag{Name: "claim", Required: true, Usage: "claim in name=value form; repeat per claim"},
			&cli.StringFlag{Name: "output", Required: true, Usage: "path to write the signed credential"},
		},
		Action: func(c *cli.Context) error {
			kf, err := readKeyFile(c.String("sigkey"))
			if err != nil {
				return err
			}
			sk, err := kf.decodeSigkey()
			if err != nil {
				return err
			}

			names, values, err := parseClaims(c.StringSlice("claim"))
			if err != nil {
				return err
			}
			if len(names) != kf.MessageCount {
				return fmt.Errorf("key supports %d claims, got %d", kf.MessageCount, len(names))
			}

			params, err := core.NewParams([]byte(kf.Label))
			if err != nil {
				return err
			}

			msgs := claimsToMessages(values)
			sig, err := core.Sign(sk, params, msgs, rand.Reader)
			if err != nil {
				return fmt.Errorf("signing credential: %w", err)
			}
			sigBytes, err := sig.MarshalBinary()
			if err != nil {
				return err
			}

			cred := credential{
				Label:       kf.Label,
				ClaimNames:  names,
				ClaimValues: values,
				Signature:   base64.StdEncoding.EncodeToString(sigBytes),
			}
			if err := writeJSON(c.String("output"), cred); err != nil {
				return err
			}
			sugar.Infow("credential issued", "claims", names)
			return nil
		},
	}
}

func verifyCommand(sugar *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "verify a signed credential",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "verkey", Required: true},
			&cli.StringFlag{Name: "credential", Required: true},
		},
		Action: func(c *cli.Context) error {
			kf, err := readKeyFile(c.String("verkey"))
			if err != nil {
				return err
			}
			vk, err := kf.decodeVerkey()
			if err != nil {
				return err
			}
			var cred credential
			if err := readJSON(c.String("credential"), &cred); err != nil {
				return err
			}
			sig, err := cred.decodeSignature()
			if err != nil {
				return err
			}
			params, err := core.NewParams([]byte(cred.Label))
			if err != nil {
				return err
			}
			ok, err := core.Verify(vk, params, claimsToMessages(cred.ClaimValues), sig)
			if err != nil {
				return fmt.Errorf("verification error: %w", err)
			}
			sugar.Infow("credential verified", "valid", ok)
			if !ok {
				return core.ErrInvalidSignature
			}
			fmt.Println("valid")
			return nil
		},
	}
}

func proveCommand(sugar *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "prove",
		Usage: "derive a selective-disclosure presentation over a credential",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "verkey", Required: true},
			&cli.StringFlag{Name: "credential", Required: true},
			&cli.StringSliceFlag{Name: "reveal", Usage: "claim name to disclose; repeat per claim, default none"},
			&cli.StringFlag{Name: "output", Required: true},
		},
		Action: func(c *cli.Context) error {
			kf, err := readKeyFile(c.String("verkey"))
			if err != nil {
				return err
			}
			vk, err := kf.decodeVerkey()
			if err != nil {
				return err
			}
			var cred credential
			if err := readJSON(c.String("credential"), &cred); err != nil {
				return err
			}
			sig, err := cred.decodeSignature()
			if err != nil {
				return err
			}

			revealNames := c.StringSlice("reveal")
			revealedIdx := make([]int, 0, len(revealNames))
			for _, name := range revealNames {
				idx := indexOf(cred.ClaimNames, name)
				if idx < 0 {
					return fmt.Errorf("credential has no claim named %q", name)
				}
				revealedIdx = append(revealedIdx, idx)
			}

			params, err := core.NewParams([]byte(cred.Label))
			if err != nil {
				return err
			}
			presentation, err := core.NewPresentation(sig, vk, params, claimsToMessages(cred.ClaimValues), revealedIdx, nil, rand.Reader)
			if err != nil {
				return fmt.Errorf("building presentation: %w", err)
			}

			presBytes, err := presentation.MarshalBinary()
			if err != nil {
				return err
			}
			disclosed := make(map[string]string, len(revealedIdx))
			for _, idx := range revealedIdx {
				disclosed[cred.ClaimNames[idx]] = cred.ClaimValues[idx]
			}

			out := presentationFile{
				Label:        cred.Label,
				ClaimNames:   cred.ClaimNames,
				Disclosed:    disclosed,
				Presentation: base64.StdEncoding.EncodeToString(presBytes),
			}
			if err := writeJSON(c.String("output"), out); err != nil {
				return err
			}
			sugar.Infow("presentation created", "revealed", revealNames)
			return nil
		},
	}
}

func verifyProofCommand(sugar *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "verify-proof",
		Usage: "verify a selective-disclosure presentation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "verkey", Required: true},
			&cli.StringFlag{Name: "presentation", Required: true},
		},
		Action: func(c *cli.Context) error {
			kf, err := readKeyFile(c.String("verkey"))
			if err != nil {
				return err
			}
			vk, err := kf.decodeVerkey()
			if err != nil {
				return err
			}
			var pf presentationFile
			if err := readJSON(c.String("presentation"), &pf); err != nil {
				return err
			}
			presBytes, err := base64.StdEncoding.DecodeString(pf.Presentation)
			if err != nil {
				return err
			}
			var presentation core.Presentation
			if err := presentation.UnmarshalBinary(presBytes); err != nil {
				return fmt.Errorf("decoding presentation: %w", err)
			}

			params, err := core.NewParams([]byte(pf.Label))
			if err != nil {
				return err
			}
			ok, err := presentation.Verify(vk, params)
			if err != nil {
				return fmt.Errorf("verification error: %w", err)
			}
			sugar.Infow("presentation verified", "valid", ok, "disclosed", pf.Disclosed)
			if !ok {
				return core.ErrInvalidProof
			}
			fmt.Println("valid")
			for name, value := range pf.Disclosed {
				fmt.Printf("  %s = %s\n", name, value)
			}
			return nil
		},
	}
}

func parseClaims(claims []string) (names, values []string, err error) {
	names = make([]string, len(claims))
	values = make([]string, len(claims))
	for i, claim := range claims {
		parts := strings.SplitN(claim, "=", 2)
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("claim %q is not in name=value form", claim)
		}
		names[i] = parts[0]
		values[i] = parts[1]
	}
	return names, values, nil
}

func claimsToMessages(values []string) []*big.Int {
	messages := make([]*big.Int, len(values))
	for i, v := range values {
		messages[i] = core.MessageFromString(v)
	}
	return messages
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (kf *keyFile) decodeSigkey() (*core.Sigkey, error) {
	data, err := base64.StdEncoding.DecodeString(kf.Sigkey)
	if err != nil {
		return nil, err
	}
	var sk core.Sigkey
	if err := sk.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &sk, nil
}

func (kf *keyFile) decodeVerkey() (*core.Verkey, error) {
	data, err := base64.StdEncoding.DecodeString(kf.Verkey)
	if err != nil {
		return nil, err
	}
	var vk core.Verkey
	if err := vk.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &vk, nil
}

func (cred *credential) decodeSignature() (*core.Signature, error) {
	data, err := base64.StdEncoding.DecodeString(cred.Signature)
	if err != nil {
		return nil, err
	}
	var sig core.Signature
	if err := sig.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &sig, nil
}

func readKeyFile(path string) (*keyFile, error) {
	var kf keyFile
	if err := readJSON(path, &kf); err != nil {
		return nil, err
	}
	return &kf, nil
}
