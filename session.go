// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/patrickmn/go-cache"

	"github.com/eliottgray/orchard/avl"
	"github.com/eliottgray/orchard/ordering"
)

var (
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrUnknownCommand = errors.New("unknown command")
)

// Version is one tree in a session's history. Trees are persistent, so
// keeping every version costs only the nodes each edit rebuilt.
type Version struct {
	ID    int
	Tree  *avl.Tree[string]
	Label string
}

// Session is an editable history of tree versions. history[cursor] is the
// current version; versions after the cursor can be redone until the next
// edit discards them.
type Session struct {
	order   ordering.Order
	history []Version
	cursor  int
	nextID  int
	depth   int
	renders *cache.Cache
	logger  *slog.Logger
}

// NewSession starts a history at tree, which must use order's comparison.
// depth bounds the number of versions kept.
func NewSession(order ordering.Order, tree *avl.Tree[string], depth int, renders *cache.Cache, logger *slog.Logger) *Session {
	if tree == nil {
		tree = avl.NewFunc(order.Compare)
	}
	if depth < 1 {
		depth = 1
	}
	s := &Session{
		order:   order,
		depth:   depth,
		renders: renders,
		logger:  logger,
	}
	s.history = []Version{{ID: s.allocID(), Tree: tree, Label: "start"}}
	return s
}

func (s *Session) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Current returns the version edits apply to.
func (s *Session) Current() Version {
	return s.history[s.cursor]
}

// Tree is shorthand for Current().Tree.
func (s *Session) Tree() *avl.Tree[string] {
	return s.Current().Tree
}

// Versions lists the retained history, oldest first.
func (s *Session) Versions() []Version {
	out := make([]Version, len(s.history))
	copy(out, s.history)
	return out
}

// Cursor is the index of the current version in Versions.
func (s *Session) Cursor() int {
	return s.cursor
}

// Order returns the ordering the session's trees use.
func (s *Session) Order() ordering.Order {
	return s.order
}

// commit records tree as a new current version. An edit that changed
// nothing returns the same tree and does not create a version.
func (s *Session) commit(tree *avl.Tree[string], label string) bool {
	if tree == s.Tree() {
		return false
	}
	s.history = append(s.history[:s.cursor+1], Version{ID: s.allocID(), Tree: tree, Label: label})
	if over := len(s.history) - s.depth; over > 0 {
		for _, dropped := range s.history[:over] {
			s.renders.Delete(renderKey(dropped.ID))
		}
		s.history = append([]Version(nil), s.history[over:]...)
	}
	s.cursor = len(s.history) - 1

	v := s.Current()
	s.logger.Debug("committed version", "id", v.ID, "label", label, "size", v.Tree.Size(), "height", v.Tree.Height())
	return true
}

// Undo moves back one version.
func (s *Session) Undo() error {
	if s.cursor == 0 {
		return ErrNothingToUndo
	}
	s.cursor--
	return nil
}

// Redo moves forward to a version undone earlier.
func (s *Session) Redo() error {
	if s.cursor == len(s.history)-1 {
		return ErrNothingToRedo
	}
	s.cursor++
	return nil
}

// Checkout makes the version with the given id current without discarding
// anything.
func (s *Session) Checkout(id int) error {
	for i, v := range s.history {
		if v.ID == id {
			s.cursor = i
			return nil
		}
	}
	return fmt.Errorf("version %d is not retained", id)
}

// Render returns the cached diagram of the current version.
func (s *Session) Render() string {
	return GetOrRender(s.renders, s.Current())
}

type sessionCommand struct {
	name    string
	usage   string
	summary string
	minArgs int
	maxArgs int // -1 for no limit
	run     func(s *Session, args []string) (string, error)
}

var sessionCommands = []sessionCommand{
	{"insert", "insert KEY...", "add keys; an equal key is replaced", 1, -1, (*Session).insert},
	{"delete", "delete KEY...", "remove keys", 1, -1, (*Session).delete},
	{"contains", "contains KEY", "report whether a key is present", 1, 1, (*Session).contains},
	{"range", "range START END", "list keys between START and END inclusive", 2, 2, (*Session).rangeOf},
	{"min", "min", "smallest key", 0, 0, (*Session).minKey},
	{"max", "max", "largest key", 0, 0, (*Session).maxKey},
	{"size", "size", "number of keys", 0, 0, (*Session).size},
	{"height", "height", "height of the tree", 0, 0, (*Session).height},
	{"list", "list [desc]", "list every key, ascending or descending", 0, 1, (*Session).list},
	{"at", "at INDEX", "key at a zero-based position", 1, 1, (*Session).at},
	{"rank", "rank KEY", "number of keys before KEY", 1, 1, (*Session).rank},
	{"print", "print", "draw the tree", 0, 0, (*Session).print},
	{"validate", "validate", "check every tree invariant", 0, 0, (*Session).validate},
	{"undo", "undo", "go back one version", 0, 0, (*Session).undo},
	{"redo", "redo", "go forward one version", 0, 0, (*Session).redo},
	{"versions", "versions", "list retained versions", 0, 0, (*Session).versions},
}

func lookupSessionCommand(name string) (sessionCommand, bool) {
	for _, c := range sessionCommands {
		if c.name == name {
			return c, true
		}
	}
	return sessionCommand{}, false
}

// Execute runs one command line. Words are split with shell quoting rules,
// so keys may contain spaces when quoted.
func (s *Session) Execute(line string) (string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return "", fmt.Errorf("failed to parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return "", nil
	}

	name, args := strings.ToLower(args[0]), args[1:]
	if name == "help" {
		return s.help(), nil
	}
	c, ok := lookupSessionCommand(name)
	if !ok {
		return "", fmt.Errorf("%w %q (try help)", ErrUnknownCommand, name)
	}
	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		return "", fmt.Errorf("usage: %s", c.usage)
	}

	s.logger.Debug("executing", "command", name, "args", len(args))
	return c.run(s, args)
}

func (s *Session) help() string {
	var sb strings.Builder
	for _, c := range sessionCommands {
		fmt.Fprintf(&sb, "%-18s %s\n", c.usage, c.summary)
	}
	fmt.Fprintf(&sb, "%-18s %s", "help", "show this list")
	return sb.String()
}

func (s *Session) insert(keys []string) (string, error) {
	tree := s.Tree()
	replaced := 0
	for _, key := range keys {
		if tree.Contains(key) {
			replaced++
		}
		tree = tree.Insert(key)
	}
	s.commit(tree, "insert "+strings.Join(keys, " "))

	added := len(keys) - replaced
	return fmt.Sprintf("inserted %d, replaced %d, size %d", added, replaced, tree.Size()), nil
}

func (s *Session) delete(keys []string) (string, error) {
	tree := s.Tree()
	removed := 0
	for _, key := range keys {
		next := tree.Delete(key)
		if next != tree {
			removed++
		}
		tree = next
	}
	s.commit(tree, "delete "+strings.Join(keys, " "))

	return fmt.Sprintf("deleted %d, absent %d, size %d", removed, len(keys)-removed, tree.Size()), nil
}

func (s *Session) contains(args []string) (string, error) {
	return strconv.FormatBool(s.Tree().Contains(args[0])), nil
}

func (s *Session) rangeOf(args []string) (string, error) {
	return strings.Join(s.Tree().Range(args[0], args[1]), "\n"), nil
}

func (s *Session) minKey([]string) (string, error) {
	if key, ok := s.Tree().Min(); ok {
		return key, nil
	}
	return "(empty)", nil
}

func (s *Session) maxKey([]string) (string, error) {
	if key, ok := s.Tree().Max(); ok {
		return key, nil
	}
	return "(empty)", nil
}

func (s *Session) size([]string) (string, error) {
	return strconv.Itoa(s.Tree().Size()), nil
}

func (s *Session) height([]string) (string, error) {
	return strconv.Itoa(s.Tree().Height()), nil
}

func (s *Session) list(args []string) (string, error) {
	if len(args) == 1 {
		if !strings.EqualFold(args[0], "desc") {
			return "", fmt.Errorf("usage: list [desc]")
		}
		return strings.Join(s.Tree().Descending(), "\n"), nil
	}
	return strings.Join(s.Tree().Ascending(), "\n"), nil
}

func (s *Session) at(args []string) (string, error) {
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	key, ok := s.Tree().At(i)
	if !ok {
		return "", fmt.Errorf("index %d out of range [0, %d)", i, s.Tree().Size())
	}
	return key, nil
}

func (s *Session) rank(args []string) (string, error) {
	rank, found := s.Tree().Rank(args[0])
	if found {
		return fmt.Sprintf("%d (present)", rank), nil
	}
	return fmt.Sprintf("%d (absent)", rank), nil
}

func (s *Session) print([]string) (string, error) {
	return strings.TrimSuffix(s.Render(), "\n"), nil
}

func (s *Session) validate([]string) (string, error) {
	if err := s.Tree().Validate(); err != nil {
		return "", fmt.Errorf("version %d: %w", s.Current().ID, err)
	}
	return "ok", nil
}

func (s *Session) undo([]string) (string, error) {
	if err := s.Undo(); err != nil {
		return "", err
	}
	return s.describeCurrent(), nil
}

func (s *Session) redo([]string) (string, error) {
	if err := s.Redo(); err != nil {
		return "", err
	}
	return s.describeCurrent(), nil
}

func (s *Session) describeCurrent() string {
	v := s.Current()
	return fmt.Sprintf("version %d (%s), size %d", v.ID, v.Label, v.Tree.Size())
}

func (s *Session) versions([]string) (string, error) {
	lines := make([]string, 0, len(s.history))
	for i, v := range s.history {
		marker := " "
		if i == s.cursor {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %4d  size %-6d %s", marker, v.ID, v.Tree.Size(), v.Label))
	}
	return strings.Join(lines, "\n"), nil
}
