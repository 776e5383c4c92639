// Package console is the interactive text menu over the ledger. Commands are
// looked up in a dispatch table by number or by name.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tinoosan/finledger/internal/service/account"
	"github.com/tinoosan/finledger/internal/service/analytics"
	"github.com/tinoosan/finledger/internal/service/category"
	"github.com/tinoosan/finledger/internal/service/operation"
	"github.com/tinoosan/finledger/internal/slug"
	"github.com/tinoosan/finledger/internal/transfer"
)

// DateLayout is the layout users type period bounds in (dd.MM.yyyy HH:mm:ss).
const DateLayout = "02.01.2006 15:04:05"

// Deps are the ledger services the menu drives.
type Deps struct {
	Accounts   account.Service
	Categories category.Service
	Operations operation.Service
	Analytics  analytics.Service
	Exporter   *transfer.Exporter
	Importer   *transfer.Importer
}

type Console struct {
	in       *bufio.Reader
	out      io.Writer
	deps     Deps
	log      *slog.Logger
	currency string
	loc      *time.Location

	commands []Command
	byName   map[string]Command
}

type Option func(*Console)

// WithLocation sets the zone typed dates are read in. Default time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Console) { c.loc = loc }
}

// WithCurrency sets the ISO 4217 code amounts are displayed in. Default RUB.
func WithCurrency(code string) Option {
	return func(c *Console) { c.currency = code }
}

func New(in io.Reader, out io.Writer, deps Deps, log *slog.Logger, opts ...Option) *Console {
	if log == nil {
		log = slog.Default()
	}
	c := &Console{
		in:       bufio.NewReader(in),
		out:      out,
		deps:     deps,
		log:      log,
		currency: "RUB",
		loc:      time.Local,
	}
	for _, o := range opts {
		o(c)
	}
	c.commands = buildCommands()
	c.byName = make(map[string]Command, len(c.commands))
	for i, cmd := range c.commands {
		cmd = Timed(cmd, c.out, c.log)
		c.commands[i] = cmd
		c.byName[cmd.Name] = cmd
	}
	return c
}

// Run shows the menu until the user picks exit or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		c.drawMenu()
		line, err := c.readLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		cmd, ok := c.lookup(line)
		if !ok {
			fmt.Fprintf(c.out, "unknown command %q\n", line)
			continue
		}
		if cmd.Name == cmdExit {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}
		if err := cmd.Run(ctx, c); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
}

func (c *Console) drawMenu() {
	fmt.Fprintln(c.out, "==== Menu ====")
	for i, cmd := range c.commands {
		fmt.Fprintf(c.out, "%2d) %s\n", i+1, cmd.Title)
	}
}

// lookup accepts a menu number or a command name in any spelling that
// slugifies to it ("Create Account", "create-account").
func (c *Console) lookup(input string) (Command, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(c.commands) {
			return Command{}, false
		}
		return c.commands[n-1], true
	}
	cmd, ok := c.byName[slug.Slugify(input)]
	return cmd, ok
}

// readLine prints prompt and returns the next trimmed line. A final line
// without a newline is still returned; io.EOF only when nothing was read.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	s, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
