package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tacogips/clismith/internal/app"
	"github.com/tacogips/clismith/internal/schema"
)

// TestE2E_GenerateAllTargets generates every target from one description.
func TestE2E_GenerateAllTargets(t *testing.T) {
	tempDir := t.TempDir()
	configPath := copyFixtureToTemp(t, "configs/todo.yaml", tempDir)
	outputDir := filepath.Join(tempDir, "out")

	result, err := app.Generate(context.Background(), app.GenerateOptions{
		RenderOptions: app.RenderOptions{ConfigPath: configPath, All: true},
		OutputDir:     outputDir,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Targets) != 5 {
		t.Fatalf("expected 5 targets, got %d", len(result.Targets))
	}

	expected := map[string][]string{
		"python":     {"pyproject.toml", "todo_cli/__init__.py", "todo_cli/__main__.py", "todo_cli/cli.py", "todo_cli/hooks.py", "README.md"},
		"nodejs":     {"package.json", "README.md"},
		"typescript": {"package.json", "tsconfig.json", "README.md"},
		"rust":       {"Cargo.toml", "src/main.rs", "src/hooks.rs", "README.md"},
		"go":         {"go.mod", "main.go", "hooks.go", "README.md"},
	}
	for target, files := range expected {
		for _, f := range files {
			assertExists(t, filepath.Join(outputDir, target, filepath.FromSlash(f)))
		}
	}

	cli := readFile(t, filepath.Join(outputDir, "python", "todo_cli", "cli.py"))
	for _, want := range []string{"def add_command(", "def config_get_command(", `"low"`, `"high"`} {
		if !strings.Contains(cli, want) {
			t.Errorf("cli.py does not contain %q", want)
		}
	}

	main := readFile(t, filepath.Join(outputDir, "go", "main.go"))
	for _, want := range []string{"addCmd := &cobra.Command{", "configGetCmd := &cobra.Command{"} {
		if !strings.Contains(main, want) {
			t.Errorf("main.go does not contain %q", want)
		}
	}
}

// TestE2E_HooksSurviveRegeneration edits the description and regenerates
// over an existing project with overwrite enabled.
func TestE2E_HooksSurviveRegeneration(t *testing.T) {
	tempDir := t.TempDir()
	configPath := copyFixtureToTemp(t, "configs/todo.yaml", tempDir)
	outputDir := filepath.Join(tempDir, "out")
	opts := app.GenerateOptions{
		RenderOptions: app.RenderOptions{ConfigPath: configPath},
		OutputDir:     outputDir,
		Overwrite:     true,
	}

	if _, err := app.Generate(context.Background(), opts); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	hooksPath := filepath.Join(outputDir, "todo_cli", "hooks.py")
	userCode := "# my implementation\n"
	if err := os.WriteFile(hooksPath, []byte(userCode), 0o644); err != nil {
		t.Fatalf("failed to edit hooks: %v", err)
	}

	config := readFile(t, configPath)
	config = strings.Replace(config, "    done:\n", "    archive:\n      description: Archive old tasks\n    done:\n", 1)
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("failed to edit config: %v", err)
	}

	result, err := app.Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	if got := result.Targets[0].FilesPreserved; got != 1 {
		t.Errorf("expected 1 preserved file, got %d", got)
	}
	if got := readFile(t, hooksPath); got != userCode {
		t.Errorf("hooks were overwritten: %q", got)
	}
	if cli := readFile(t, filepath.Join(outputDir, "todo_cli", "cli.py")); !strings.Contains(cli, "def archive_command(") {
		t.Errorf("regenerated cli.py is missing the new command")
	}
}

// TestE2E_JSONDescription loads a JSON description.
func TestE2E_JSONDescription(t *testing.T) {
	tempDir := t.TempDir()
	configPath := copyFixtureToTemp(t, "configs/todo.json", tempDir)

	result, err := app.Validate(context.Background(), app.ValidateOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Commands != 3 || result.Groups != 1 {
		t.Errorf("expected 3 commands in 1 group, got %d in %d", result.Commands, result.Groups)
	}
	if lang := result.Compiled.Config.Language; lang != "go" {
		t.Errorf("expected language go, got %s", lang)
	}
}

// TestE2E_InvalidDescription reports every problem in one pass.
func TestE2E_InvalidDescription(t *testing.T) {
	tempDir := t.TempDir()
	configPath := copyFixtureToTemp(t, "configs/invalid.yaml", tempDir)
	outputDir := filepath.Join(tempDir, "out")

	_, err := app.Generate(context.Background(), app.GenerateOptions{
		RenderOptions: app.RenderOptions{ConfigPath: configPath},
		OutputDir:     outputDir,
	})
	errs, ok := schema.AsSchemaErrors(err)
	if !ok {
		t.Fatalf("expected schema errors, got %v", err)
	}
	for _, kind := range []schema.SchemaErrorKind{
		schema.KindUnknownLanguage,
		schema.KindEmptyChoices,
		schema.KindDuplicate,
		schema.KindInvalidValue,
	} {
		if len(errs.OfKind(kind)) == 0 {
			t.Errorf("expected a %s error in:\n%v", kind, errs)
		}
	}
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Errorf("nothing should be written for an invalid description")
	}
}

// TestE2E_TemplateOverride replaces one embedded template from disk.
func TestE2E_TemplateOverride(t *testing.T) {
	tempDir := t.TempDir()
	configPath := copyFixtureToTemp(t, "configs/todo.yaml", tempDir)
	templatesDir := copyFixtureToTemp(t, "templates/override", tempDir)
	outputDir := filepath.Join(tempDir, "out")

	_, err := app.Generate(context.Background(), app.GenerateOptions{
		RenderOptions: app.RenderOptions{ConfigPath: configPath, Targets: []string{"rust"}},
		OutputDir:     outputDir,
		TemplatesDir:  templatesDir,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	readme := readFile(t, filepath.Join(outputDir, "README.md"))
	for _, want := range []string{"# Todo CLI", "Generated for Rust from todo.yaml.", "- config get", "- config reset"} {
		if !strings.Contains(readme, want) {
			t.Errorf("README.md does not contain %q:\n%s", want, readme)
		}
	}
	// Templates not overridden still come from the embedded set.
	assertExists(t, filepath.Join(outputDir, "src", "main.rs"))
}

// TestE2E_InitThenGenerate creates a description with init and generates it.
func TestE2E_InitThenGenerate(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, app.DefaultConfigFile)

	answers := app.DefaultAnswers(configPath)
	answers.PackageName = "inited"
	answers.CommandName = "inited"
	answers.Language = "typescript"
	if _, err := app.Init(context.Background(), app.InitOptions{Path: configPath, Scaffold: "nested", Answers: answers}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	outputDir := filepath.Join(tempDir, "out")
	result, err := app.Generate(context.Background(), app.GenerateOptions{
		RenderOptions: app.RenderOptions{ConfigPath: configPath},
		OutputDir:     outputDir,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Targets[0].Target != "typescript" {
		t.Errorf("expected typescript, got %s", result.Targets[0].Target)
	}
	assertExists(t, filepath.Join(outputDir, "tsconfig.json"))
}
