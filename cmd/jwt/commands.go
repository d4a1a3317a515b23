package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jwtcore/jwt"
	"github.com/urfave/cli"
)

// stdin is read when the token argument is "-".
var stdin io.Reader = os.Stdin

var keyFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "key",
		Usage:  "the HMAC secret or the PEM encoded RSA key, used as is",
		EnvVar: "JWT_KEY",
	},
	cli.StringFlag{
		Name:   "key-file",
		Usage:  "a file holding the HMAC secret or the PEM encoded RSA key",
		EnvVar: "JWT_KEY_FILE",
	},
}

func encodeCommand() cli.Command {
	return cli.Command{
		Name:      "encode",
		Usage:     "sign the claims and print the token",
		UsageText: "jwt encode --key-file private.pem --alg RS256 --claims '{\"sub\":\"alice\"}'",
		Flags: append([]cli.Flag{
			cli.StringFlag{
				Name:   "alg",
				Usage:  "the signing algorithm: HS256, HS384, HS512, RS256, RS384 or RS512",
				Value:  jwt.HS256.Name(),
				EnvVar: "JWT_ALG",
			},
			cli.StringFlag{
				Name:  "claims",
				Usage: "the claims as a JSON object",
				Value: "{}",
			},
			cli.StringFlag{
				Name:  "header",
				Usage: "extra header fields as a JSON object, e.g. '{\"kid\":\"2024-01\"}'",
			},
			cli.DurationFlag{
				Name:  "ttl",
				Usage: "set the \"exp\" and \"iat\" claims, e.g. 15m",
			},
			cli.BoolFlag{
				Name:  "jti",
				Usage: "set a random \"jti\" claim",
			},
		}, keyFlags...),
		Action: encodeAction,
	}
}

func encodeAction(c *cli.Context) error {
	alg, err := jwt.ParseAlg(c.String("alg"))
	if err != nil {
		return err
	}

	key, err := readKey(c)
	if err != nil {
		return err
	}

	var claims jwt.Map
	if err = jwt.Unmarshal([]byte(c.String("claims")), &claims); err != nil {
		return fmt.Errorf("--claims: %w", err)
	}

	var opts []jwt.SignOption
	if h := c.String("header"); h != "" {
		var header jwt.Map
		if err = jwt.Unmarshal([]byte(h), &header); err != nil {
			return fmt.Errorf("--header: %w", err)
		}
		opts = append(opts, jwt.WithHeader(header))
	}

	if ttl := c.Duration("ttl"); ttl > 0 {
		opts = append(opts, jwt.MaxAge(ttl))
	}

	if c.Bool("jti") {
		opts = append(opts, jwt.WithID())
	}

	token, err := jwt.Sign(alg, key, claims, opts...)
	if err != nil {
		return err
	}

	logger(c).Debug("token encoded", slog.String("alg", alg.Name()), slog.Int("claims", len(claims)))
	_, err = fmt.Fprintln(c.App.Writer, token)
	return err
}

func verifyCommand() cli.Command {
	return cli.Command{
		Name:      "verify",
		Usage:     "verify the token and print its claims",
		UsageText: "jwt verify --key-file public.pem --alg RS256 [--iss my-app] <token | ->",
		Flags: append([]cli.Flag{
			cli.StringFlag{
				Name:   "alg",
				Usage:  "the expected algorithm, required",
				EnvVar: "JWT_ALG",
			},
			cli.StringFlag{
				Name:  "iss",
				Usage: "the expected \"iss\" claim",
			},
			cli.StringFlag{
				Name:  "sub",
				Usage: "the expected \"sub\" claim",
			},
			cli.StringSliceFlag{
				Name:  "aud",
				Usage: "the expected \"aud\" claim, repeat for multiple values",
			},
			cli.StringSliceFlag{
				Name:  "require",
				Usage: "a claim that must be present, repeat for multiple claims",
			},
			cli.DurationFlag{
				Name:  "leeway",
				Usage: "reject tokens which expire within this duration",
			},
		}, keyFlags...),
		Action: verifyAction,
	}
}

func verifyAction(c *cli.Context) error {
	alg := c.String("alg")
	if alg == "" {
		return errors.New("--alg is required, the token never selects its own algorithm")
	}

	key, err := readKey(c)
	if err != nil {
		return err
	}

	token, err := readToken(c)
	if err != nil {
		return err
	}

	validators := []jwt.TokenValidator{
		jwt.Required(c.StringSlice("require")...),
		jwt.Expected{
			Issuer:   c.String("iss"),
			Subject:  c.String("sub"),
			Audience: c.StringSlice("aud"),
		},
	}

	if leeway := c.Duration("leeway"); leeway > 0 {
		validators = append(validators, jwt.Leeway(leeway))
	}

	log := logger(c)
	validators = append(validators, jwt.LogFailures(log))

	claims, err := jwt.Verify(token, alg, key, validators...)
	if err != nil {
		log.Debug("token rejected", slog.String("kind", jwt.KindOf(err).String()))
		return err
	}

	log.Debug("token verified", slog.String("alg", alg))
	return printJSON(c.App.Writer, claims)
}

func decodeCommand() cli.Command {
	return cli.Command{
		Name:  "decode",
		Usage: "print the header and the claims of the token",
		Description: `With a key, the token is verified with the algorithm of its own "alg" header.
Do not rely on it with RSA public keys, use verify instead.
With --no-verify, nothing is checked and the output must not be trusted.`,
		UsageText: "jwt decode [--no-verify] [--key secret] <token | ->",
		Flags: append([]cli.Flag{
			cli.BoolFlag{
				Name:  "no-verify",
				Usage: "skip the signature and the time checks",
			},
		}, keyFlags...),
		Action: decodeAction,
	}
}

func decodeAction(c *cli.Context) error {
	token, err := readToken(c)
	if err != nil {
		return err
	}

	log := logger(c)

	var claims jwt.Claims
	if c.Bool("no-verify") {
		log.Warn("signature not verified, the claims must not be trusted")
		claims, err = jwt.DecodeUnverified(token)
	} else {
		var key []byte
		if key, err = readKey(c); err != nil {
			return err
		}
		claims, err = jwt.Decode(token, key)
	}

	if err != nil {
		return err
	}

	header, err := jwt.DecodeHeader(token)
	if err != nil {
		return err
	}

	return printJSON(c.App.Writer, jwt.Map{
		"header":  header,
		"payload": claims,
	})
}

func readKey(c *cli.Context) ([]byte, error) {
	if filename := c.String("key-file"); filename != "" {
		return jwt.ReadFile(filename)
	}

	if key := c.String("key"); key != "" {
		return []byte(key), nil
	}

	return nil, errors.New("a key is required, set --key or --key-file")
}

func readToken(c *cli.Context) (string, error) {
	token := c.Args().First()
	if token == "-" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("a token argument is required")
	}

	return token, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
