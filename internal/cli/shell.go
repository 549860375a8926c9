package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// ShellOptions tune the line-oriented shell.
type ShellOptions struct {
	Group  bool   // list grouped by pending/done
	Watch  bool   // redraw the list after every change
	Prompt string // printed before each line; empty for none
}

// Shell drives a todo.List from text commands, one per line.
type Shell struct {
	list  *todo.List
	theme ui.Theme
	out   io.Writer
	opt   ShellOptions
}

// NewShell returns a shell writing to out.
func NewShell(l *todo.List, theme ui.Theme, out io.Writer, opt ShellOptions) *Shell {
	return &Shell{list: l, theme: theme, out: out, opt: opt}
}

// Run reads commands from in until EOF, quit, or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if s.opt.Watch {
		cancel := s.list.Subscribe(func(st todo.State) { s.render(st, s.opt.Group) })
		defer cancel()
	}

	sc := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opt.Prompt != "" {
			fmt.Fprint(s.out, s.opt.Prompt)
		}
		if !sc.Scan() {
			break
		}
		if quit := s.Exec(sc.Text()); quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Exec runs one command line and reports whether the shell should stop.
func (s *Shell) Exec(line string) (quit bool) {
	cmd, rest := splitCommand(line)
	switch cmd {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printHelp()

	case "ls", "list":
		group := s.opt.Group
		if rest == "-g" || rest == "--group" {
			group = true
		}
		s.render(s.list.State(), group)

	case "add":
		s.list.SetInput(rest)
		if s.list.Submit() {
			s.ack("added")
		}

	case "done", "toggle":
		if it, ok := s.resolve(cmd, rest); ok {
			s.list.Toggle(it.ID)
			s.ack("toggled")
		}

	case "rm", "delete":
		if it, ok := s.resolve(cmd, rest); ok {
			s.list.Delete(it.ID)
			s.ack("removed")
		}

	case "edit":
		if it, ok := s.resolve(cmd, rest); ok {
			s.list.BeginEdit(it)
			if e, ok := s.list.Editing(); ok && !s.opt.Watch {
				fmt.Fprintf(s.out, "editing %q; use `buf <text>` then `save`\n", e.Buffer)
			}
		}

	case "buf":
		if _, ok := s.list.Editing(); !ok {
			s.theme.Fail(s.out, "buf: nothing is being edited")
			return false
		}
		s.list.SetEditBuffer(rest)

	case "save":
		e, ok := s.list.Editing()
		if !ok {
			s.theme.Fail(s.out, "save: nothing is being edited")
			return false
		}
		if s.list.SaveEdit(e.ID) {
			s.ack("saved")
		}

	case "cancel":
		if s.list.CancelEdit() {
			s.ack("cancelled")
		}

	case "json":
		s.printJSON()

	default:
		s.theme.Fail(s.out, "unknown command: "+cmd)
		fmt.Fprintln(s.out, s.theme.Muted.Render("Hint: type `help` to see commands"))
	}
	return false
}

func (s *Shell) ack(msg string) {
	if !s.opt.Watch {
		s.theme.OK(s.out, msg)
	}
}

// splitCommand splits off the first word. The remainder keeps its inner
// whitespace and only loses the separator after the command.
func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return strings.ToLower(strings.TrimSpace(line)), ""
	}
	return strings.ToLower(line[:i]), line[i+1:]
}

// resolve turns a 1-based index as printed by ls into a record.
func (s *Shell) resolve(cmd, arg string) (model.Item, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		s.theme.Fail(s.out, fmt.Sprintf("usage: %s <index>", cmd))
		return model.Item{}, false
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		s.theme.Fail(s.out, fmt.Sprintf("%s: not a number: %s", cmd, arg))
		return model.Item{}, false
	}
	items := s.list.Items()
	if n < 1 || n > len(items) {
		s.theme.Fail(s.out, fmt.Sprintf("index out of range: have %d, got %d", len(items), n))
		fmt.Fprintln(s.out, s.theme.Muted.Render("Hint: run `ls` to see valid indexes"))
		return model.Item{}, false
	}
	return items[n-1], true
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  add <text>      Add a new item
  ls [-g]         List items (-g groups by pending/done)
  done <index>    Toggle done for item at 1-based index
  rm <index>      Remove item at 1-based index
  edit <index>    Start editing an item
  buf <text>      Replace the text being edited
  save            Save the edit
  cancel          Drop the edit
  json            Print the list as JSON
  quit            Leave the shell
`)
}

// -------------- rendering helpers --------------

// maxTitleWidth is the display width, in cells, of a title in ls output.
const maxTitleWidth = 80

func (s *Shell) render(st todo.State, group bool) {
	t := s.theme
	done := 0
	for _, it := range st.Items {
		if it.Completed {
			done++
		}
	}
	pending := len(st.Items) - done

	lines := []string{
		t.Header(done, pending),
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if group {
		lines = append(lines, s.groupLines(st)...)
	} else {
		lines = append(lines, orPlaceholder(t, s.flatLines(st, func(model.Item) bool { return true }), "no items")...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `add Buy milk`"))
	fmt.Fprintln(s.out, t.Panel(lines...))
}

// flatLines renders the records accepted by keep, numbered by their
// position in the whole list.
func (s *Shell) flatLines(st todo.State, keep func(model.Item) bool) []string {
	t := s.theme
	edit, editing := st.Edit.(todo.Editing)
	var out []string
	for i, it := range st.Items {
		if !keep(it) {
			continue
		}
		idx := t.Muted.Render(fmt.Sprintf("%2d.", i+1))
		if editing && edit.ID == it.ID {
			out = append(out, fmt.Sprintf("%s %s %s", idx, t.Accent.Render("✎"), edit.Buffer))
			continue
		}
		text := ansi.Truncate(it.Text, maxTitleWidth, "...")
		box := t.Muted.Render(t.Box(false))
		if it.Completed {
			box, text = t.Success.Render(t.Box(true)), t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", idx, box, text))
	}
	return out
}

func (s *Shell) groupLines(st todo.State) []string {
	t := s.theme
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, orPlaceholder(t, s.flatLines(st, func(it model.Item) bool { return !it.Completed }), "(none)")...)
	lines = append(lines, "", t.Accent.Render("Done"))
	lines = append(lines, orPlaceholder(t, s.flatLines(st, func(it model.Item) bool { return it.Completed }), "(none)")...)
	return lines
}

func orPlaceholder(t ui.Theme, lines []string, placeholder string) []string {
	if len(lines) == 0 {
		return []string{t.Muted.Render(placeholder)}
	}
	return lines
}

type jsonEdit struct {
	ID     string `json:"id"`
	Buffer string `json:"buffer"`
}

type jsonState struct {
	Items   []model.Item `json:"items"`
	Input   string       `json:"input"`
	Editing *jsonEdit    `json:"editing"`
}

func (s *Shell) printJSON() {
	st := s.list.State()
	out := jsonState{Items: st.Items, Input: st.Input}
	if out.Items == nil {
		out.Items = []model.Item{}
	}
	if e, ok := st.Edit.(todo.Editing); ok {
		out.Editing = &jsonEdit{ID: e.ID, Buffer: e.Buffer}
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		s.theme.Fail(s.out, "json: "+err.Error())
		return
	}
	fmt.Fprintln(s.out, string(b))
}
