// Command jwt encodes, verifies and decodes JSON Web Tokens from the terminal.
//
// The key and the algorithm can be passed through the environment
// (JWT_KEY, JWT_KEY_FILE, JWT_ALG) or a .env file in the working directory.
//
//	$ jwt encode --key-file private.pem --alg RS256 --ttl 15m --claims '{"sub":"alice"}'
//	$ jwt verify --key-file public.pem --alg RS256 --iss my-app $TOKEN
//	$ jwt decode --no-verify $TOKEN
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

const version = "0.1.0"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "jwt: no .env file found, relying on system env vars")
	}

	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "jwt:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "jwt"
	app.Usage = "encode, verify and decode JSON Web Tokens"
	app.UsageText = "jwt <command> [command-flags] [token]"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Metadata = map[string]interface{}{}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "log at debug level",
			EnvVar: "JWT_DEBUG",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("debug") {
			level = slog.LevelDebug
		}

		c.App.Metadata["logger"] = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
		return nil
	}
	app.Commands = []cli.Command{
		encodeCommand(),
		verifyCommand(),
		decodeCommand(),
	}

	return app
}

func logger(c *cli.Context) *slog.Logger {
	if l, ok := c.App.Metadata["logger"].(*slog.Logger); ok {
		return l
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
