package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/arith"
)

// session evaluates expressions and prints the results.
type session struct {
	cfg    config
	out    io.Writer
	errout io.Writer
	log    zerolog.Logger

	errStyle  lipgloss.Style
	infoStyle lipgloss.Style
}

func newSession(cfg config, out, errout io.Writer) *session {
	s := &session{
		cfg:    cfg,
		out:    out,
		errout: errout,
		log: zerolog.New(zerolog.ConsoleWriter{Out: errout, NoColor: !cfg.Color}).
			With().Str("cmd", "arith").Logger().
			Level(cfg.level()),
	}
	if cfg.Color {
		s.errStyle = lipgloss.NewRenderer(errout).NewStyle().Foreground(lipgloss.Color("1"))
		s.infoStyle = lipgloss.NewRenderer(out).NewStyle().Faint(true)
	} else {
		s.errStyle = lipgloss.NewStyle()
		s.infoStyle = lipgloss.NewStyle()
	}
	return s
}

// run evaluates one expression and prints its tokens, tree, and result as
// configured. It reports whether the expression succeeded; errors are printed.
func (s *session) run(src string) bool {
	s.log.Debug().Str("src", src).Msg("evaluating")
	toks, err := arith.TokenizeString(src)
	if err != nil {
		return s.fail(err)
	}
	if s.cfg.Tokens || s.cfg.JSON {
		if err := s.printTokens(toks); err != nil {
			return s.fail(err)
		}
	}
	n, err := arith.Parse(toks)
	if err != nil {
		return s.fail(err)
	}
	if s.cfg.Echo {
		fmt.Fprintln(s.out, s.infoStyle.Render("parsed: "+n.String()))
	}
	r, err := arith.Eval(n, arith.OnWarning(s.warn))
	if err != nil {
		return s.fail(err)
	}
	fmt.Fprintf(s.out, s.cfg.Format+"\n", r.Value)
	return true
}

func (s *session) printTokens(toks []arith.Token) error {
	for _, tok := range toks {
		var line string
		if s.cfg.JSON {
			b, err := json.Marshal(tok)
			if err != nil {
				return err
			}
			line = string(b)
		} else {
			line = tok.String()
		}
		fmt.Fprintln(s.out, s.infoStyle.Render(line))
	}
	return nil
}

func (s *session) warn(w arith.Warning) {
	s.log.Warn().
		Str("op", w.Func).
		Float64("x", w.X).
		Float64("n", w.N).
		Msg(w.String())
}

func (s *session) fail(err error) bool {
	s.log.Debug().Err(err).Msg("expression failed")
	fmt.Fprintln(s.errout, s.errStyle.Render("ERROR: "+err.Error()))
	return false
}

// repl evaluates each non-blank line of in. Failures are printed and do not
// stop the loop. The prompt is only printed when interactive is true.
func (s *session) repl(in io.Reader, interactive bool) error {
	sc := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(s.out, s.cfg.Prompt)
		}
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.run(line)
	}
	if interactive {
		fmt.Fprintln(s.out)
	}
	return sc.Err()
}
