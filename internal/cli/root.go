package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bfsmith/family-calendar/internal/backup"
	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/repository"
	"github.com/bfsmith/family-calendar/internal/storage"
)

type Context struct {
	Store      storage.Provider
	Repos      *repository.Repositories
	Config     *config.Config
	ConfigPath string
	Location   *time.Location
	Now        func() time.Time

	Out io.Writer
	In  io.Reader
}

// NewContext wires repositories over store. Calendar arithmetic happens in
// the configured timezone.
func NewContext(store storage.Provider, cfg *config.Config, opts ...repository.Option) (*Context, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Context{
		Store:    store,
		Repos:    repository.New(store, opts...),
		Config:   cfg,
		Location: loc,
		Now:      time.Now,
		Out:      os.Stdout,
		In:       os.Stdin,
	}, nil
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.Out, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Today is midnight of the current day in the configured timezone.
func (c *Context) Today() time.Time {
	return recurrence.StartOfDay(c.Now().In(c.Location))
}

// Confirm asks a yes/no question on In; anything but y or yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// IsFileStore reports whether the store lives in a local file that can be
// backed up.
func (c *Context) IsFileStore() bool {
	_, err := os.Stat(c.Store.GetConfigPath())
	return err == nil
}

// PerformAutomaticBackup creates a backup before destructive commands and
// only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileStore() {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
