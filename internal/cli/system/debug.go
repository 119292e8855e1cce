package system

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/constants"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show store location."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump stored records as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	out, err := json.MarshalIndent(map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.ConfigPath,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(out))
	return nil
}

type DebugDumpCmd struct {
	Collection string `arg:"" help:"Collection to dump (members, calendars, events, chores, chore_completions)."`
	ID         string `arg:"" optional:"" help:"Dump only this record."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if !slices.Contains(constants.Collections, cmd.Collection) {
		return fmt.Errorf("unknown collection %q", cmd.Collection)
	}

	var records []json.RawMessage
	if cmd.ID != "" {
		data, err := ctx.Store.Get(cmd.Collection, cmd.ID)
		if err != nil {
			return err
		}
		records = append(records, data)
	} else {
		all, err := ctx.Store.GetAll(cmd.Collection)
		if err != nil {
			return err
		}
		for _, data := range all {
			records = append(records, data)
		}
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	ctx.Println(string(out))
	return nil
}
