package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/colortasks/internal/config"
	"github.com/nibzard/colortasks/internal/kv"
	"github.com/nibzard/colortasks/internal/store"
	"github.com/nibzard/colortasks/internal/taskview"
)

// doctorCommand checks the config and validates the stored task list.
func (a *app) doctorCommand(args []string) error {
	fs := a.flagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	printSchema := fs.Bool("schema", false, "Print the task list JSON Schema and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *printSchema {
		_, err := a.io.Out.Write(store.Schema())
		return err
	}

	w := a.io.Out
	fmt.Fprintln(w, "colortasks doctor")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(a.cfg.Files) == 0 {
		fmt.Fprintln(w, "  ✅ Files: none (using defaults)")
	}
	for _, f := range a.cfg.Files {
		fmt.Fprintf(w, "  ✅ File: %s\n", f)
	}
	fmt.Fprintf(w, "  ✅ Backend: %s\n", a.cfg.Backend)
	fmt.Fprintf(w, "  ✅ Format: %s\n", a.cfg.Format)
	fmt.Fprintf(w, "  ✅ Default color: %s\n", a.cfg.Color())
	fmt.Fprintln(w)

	codec, err := store.CodecFor(a.cfg.Format)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Storage: %s\n", a.cfg.DataDir)
	backend, err := kv.Open(a.cfg.Backend, a.cfg.DataDir)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		fmt.Fprintln(w)
		return fmt.Errorf("doctor found problems")
	}
	defer backend.Close()
	fmt.Fprintln(w, "  ✅ OK")
	fmt.Fprintln(w)

	st := store.New(backend, a.cfg.StorageKey, store.WithCodec(codec))
	fmt.Fprintf(w, "Slot: %s\n", st.SlotKey())
	tasks, err := st.Read()
	switch {
	case errors.Is(err, kv.ErrNotFound):
		fmt.Fprintln(w, "  ⚠️  Not found (created on first change)")
	case err != nil:
		fmt.Fprintln(w, "  ❌ Invalid (the list loads as empty):")
		for _, e := range splitErrors(err) {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		allOK = false
	default:
		completed := 0
		for _, t := range tasks {
			if t.Completed {
				completed++
			}
		}
		overdue := taskview.OverdueTasks(tasks, a.now())
		fmt.Fprintf(w, "  ✅ Valid: %d tasks, %d completed, %d overdue\n", len(tasks), completed, len(overdue))
		if *verbose {
			for _, t := range tasks {
				box := "[ ]"
				if t.Completed {
					box = "[x]"
				}
				fmt.Fprintf(w, "    - %s %s %s (%s)\n", box, t.ID, t.Text, t.Color)
			}
		}
	}
	fmt.Fprintln(w)

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

// splitErrors returns the errors joined in err, or err itself.
func splitErrors(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := a.flagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := a.io.Out
	if *example {
		fmt.Fprint(w, config.ExampleConfig())
		return nil
	}

	if len(a.cfg.Files) > 0 {
		fmt.Fprintf(w, "# files: %s\n", strings.Join(a.cfg.Files, ", "))
	}
	for _, field := range config.Fields() {
		v, _ := a.cfg.Value(field)
		var value string
		switch v := v.(type) {
		case string:
			value = fmt.Sprintf("%q", v)
		default:
			value = fmt.Sprint(v)
		}
		fmt.Fprintf(w, "%-15s = %-30s # %s (%s)\n", field, value, a.cws.Sources[field], config.EnvName(field))
	}
	return nil
}
