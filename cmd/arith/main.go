// Command arith evaluates arithmetic expressions given as arguments, or reads
// them line by line from standard input.
package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errFailed reports that at least one expression failed. The failures have
// already been printed.
var errFailed = errors.New("some expressions failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
			logger.Error().Err(err).Msg("arith")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	flags := cfg
	var cfgFile, inFile string
	cmd := &cobra.Command{
		Use:   "arith [expr...]",
		Short: "Evaluate arithmetic expressions",
		Long: `arith evaluates arithmetic expressions with + - * / ^, postfix !, and
parentheses. Each argument is one expression. With no arguments, arith reads
one expression per line from standard input, or from the file named by --in.
Put -- before arguments that begin with a minus sign.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				if err := loadConfig(cfgFile, &cfg); err != nil {
					return err
				}
			}
			merge(cmd.Flags(), &flags, &cfg)
			if err := cfg.validate(); err != nil {
				return err
			}
			s := newSession(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if inFile != "" {
				if len(args) > 0 {
					return errors.New("--in cannot be combined with expression arguments")
				}
				f, err := os.Open(inFile)
				if err != nil {
					return err
				}
				defer f.Close()
				return s.repl(f, false)
			}
			if len(args) == 0 {
				in := cmd.InOrStdin()
				f, ok := in.(*os.File)
				return s.repl(in, ok && term.IsTerminal(int(f.Fd())))
			}
			failed := false
			for _, arg := range args {
				if !s.run(arg) {
					failed = true
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "TOML config file")
	cmd.Flags().StringVarP(&inFile, "in", "i", "", "read expressions from a file, one per line")
	bindFlags(cmd.Flags(), &flags)
	return cmd
}
