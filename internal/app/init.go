package app

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/renderer"
	"github.com/tacogips/clismith/internal/schema"
	"github.com/tacogips/clismith/internal/target"
	"github.com/tacogips/clismith/internal/template/generator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed scaffolds/*.yaml.hbs
var scaffoldsFS embed.FS

const scaffoldExt = ".yaml.hbs"

// DefaultScaffold is the scaffold used when none is named.
const DefaultScaffold = "minimal"

// DefaultConfigFile is the file init writes when no path is given.
const DefaultConfigFile = "clismith.yaml"

// InitAnswers are the identity fields of a new configuration document.
type InitAnswers struct {
	PackageName string
	CommandName string
	DisplayName string
	Description string
	Language    string
	Author      string
}

// InitOptions contains options for creating a starter configuration.
type InitOptions struct {
	// Path is the configuration file to create.
	Path string
	// Scaffold names the starter layout (see AvailableScaffolds).
	Scaffold string
	// Answers fill the scaffold.
	Answers InitAnswers
	// Force overwrites an existing file.
	Force bool
}

// InitResult holds the result of Init.
type InitResult struct {
	// Path is the absolute path of the written file.
	Path string
	// Content is the written document.
	Content []byte
}

// AvailableScaffolds returns the scaffold names, sorted.
func AvailableScaffolds() ([]string, error) {
	entries, err := fs.ReadDir(scaffoldsFS, "scaffolds")
	if err != nil {
		return nil, fmt.Errorf("failed to read scaffolds directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), scaffoldExt) {
			names = append(names, strings.TrimSuffix(e.Name(), scaffoldExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// DefaultAnswers derives answers from the configuration path: the name of
// the directory holding it becomes the package and command name.
func DefaultAnswers(path string) InitAnswers {
	name := "my-tool"
	if abs, err := filepath.Abs(path); err == nil {
		if kebab := target.Kebab(filepath.Base(filepath.Dir(abs))); schema.ValidName(kebab) {
			name = kebab
		}
	}
	return InitAnswers{
		PackageName: name,
		CommandName: name,
		DisplayName: cases.Title(language.English).String(strings.Join(target.Words(name), " ")),
		Description: "A command-line tool",
		Language:    "python",
	}
}

// Init renders a scaffold with the answers, checks that the result
// validates, and writes it.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	debug.DebugSection("[app] Init workflow start")
	debug.DebugValue("[app] Path", opts.Path)
	debug.DebugValue("[app] Scaffold", opts.Scaffold)
	debug.DebugValue("[app] Force", opts.Force)

	path := opts.Path
	if path == "" {
		path = DefaultConfigFile
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewValidationError("failed to resolve configuration path", err)
	}
	scaffold := opts.Scaffold
	if scaffold == "" {
		scaffold = DefaultScaffold
	}

	source, err := scaffoldsFS.ReadFile("scaffolds/" + scaffold + scaffoldExt)
	if err != nil {
		available, _ := AvailableScaffolds()
		return nil, NewValidationError(
			fmt.Sprintf("unknown scaffold: %s (available: %s)", scaffold, strings.Join(available, ", ")), err)
	}

	w := generator.NewFileWriter()
	if w.Exists(absPath) && !opts.Force {
		return nil, NewInitError(fmt.Sprintf("%s already exists (use --force to overwrite)", absPath), nil)
	}

	data := renderer.Context{
		"package_name": opts.Answers.PackageName,
		"command_name": opts.Answers.CommandName,
		"display_name": opts.Answers.DisplayName,
		"description":  opts.Answers.Description,
		"language":     strings.ToLower(opts.Answers.Language),
		"author":       opts.Answers.Author,
		"file_name":    filepath.Base(absPath),
	}
	helpers := map[string]interface{}{
		"yamlstr": func(v interface{}) raymond.SafeString {
			b, _ := json.Marshal(raymond.Str(v))
			return raymond.SafeString(b)
		},
	}
	text, err := generator.Render(scaffold, string(source), data, helpers)
	if err != nil {
		return nil, NewInitError("failed to render scaffold", err)
	}

	// A scaffold filled with bad answers is rejected before it is written.
	doc, err := config.ParseDocument([]byte(text), absPath)
	if err != nil {
		return nil, NewInitError("scaffold produced an unreadable document", err)
	}
	if _, err := schema.Validate(doc); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := w.WriteFile(absPath, []byte(text), generator.ModeRegular); err != nil {
		return nil, NewInitError("failed to write configuration", err)
	}
	debug.Debug("[app] Init workflow completed: %s", absPath)
	return &InitResult{Path: absPath, Content: []byte(text)}, nil
}
