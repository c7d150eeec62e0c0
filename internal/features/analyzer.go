package features

import (
	"regexp"
	"strings"

	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/schema"
)

// Thresholds bound the size of a CLI that still renders with plain output.
type Thresholds struct {
	// MaxPlainCommands is the largest command count, over the whole tree,
	// that keeps plain output.
	MaxPlainCommands int
	// MaxPlainOptions is the largest option count of any single command
	// that keeps plain output.
	MaxPlainOptions int
}

// DefaultThresholds returns two commands and five options.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxPlainCommands: 2, MaxPlainOptions: 5}
}

// markupPattern matches style tags such as "[bold]" or "[/red]", and the
// words that imply tabular or animated output.
var markupPattern = regexp.MustCompile(
	`(?i)\[/?(bold|italic|dim|underline|strike|reverse|blink|link|red|green|yellow|blue|magenta|cyan|white|black)\b[^\]]*\]` +
		`|\b(table|progress|spinner)\b`)

var (
	configCommand     = regexp.MustCompile(`^config([-_].*)?$`)
	shellCommands     = []string{"shell", "repl", "interactive"}
	completionCommand = []string{"completion", "completions"}
	pluginCommands    = []string{"plugin", "plugins"}
	verbosityOptions  = []string{"verbose", "quiet", "debug"}
	formatOptions     = []string{"format", "output-format"}
)

// Analyzer computes feature sets. It holds no mutable state.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer creates an Analyzer with the given thresholds.
func NewAnalyzer(th Thresholds) *Analyzer {
	return &Analyzer{thresholds: th}
}

// Analyze computes the feature set of cfg with the default thresholds.
func Analyze(cfg *schema.Config) FeatureSet {
	return NewAnalyzer(DefaultThresholds()).Analyze(cfg)
}

// Analyze computes the feature set of cfg. It never fails; shapes it does
// not recognize leave features off.
func (a *Analyzer) Analyze(cfg *schema.Config) FeatureSet {
	if cfg == nil {
		return NewFeatureSet()
	}

	var enabled []Name
	if a.richOutput(cfg) {
		enabled = append(enabled, RichOutput)
	}

	var commandNames []string
	cfg.CLI.Walk(func(cmd *schema.Command, _ []string) {
		commandNames = append(commandNames, fold(cmd.Name))
	})
	options := allOptions(cfg)

	if anyMatch(commandNames, func(n string) bool { return configCommand.MatchString(n) }) {
		enabled = append(enabled, ConfigurationSubsystem)
	}
	if anyIn(commandNames, shellCommands) || anyOptionNamed(options, "interactive") {
		enabled = append(enabled, InteractiveShell)
	}
	if anyOptionNamed(options, "json") || anyFormatOffersJSON(options) {
		enabled = append(enabled, JSONOutput)
	}
	if anyIn(commandNames, completionCommand) {
		enabled = append(enabled, ShellCompletion)
	}
	if anyIn(commandNames, pluginCommands) {
		enabled = append(enabled, PluginSystem)
	}
	if anyOptionNamed(options, verbosityOptions...) {
		enabled = append(enabled, VerbosityControl)
	}

	set := NewFeatureSet(enabled...)
	debug.Debug("[features] %d commands, enabled: %s", len(commandNames), set)
	return set
}

// richOutput applies the output heuristic: an explicit color opt-out always
// wins; otherwise a CLI stays plain only while it is small and its command
// descriptions carry no markup.
func (a *Analyzer) richOutput(cfg *schema.Config) bool {
	if !cfg.CLI.Color {
		return false
	}
	if cfg.CLI.CountCommands() > a.thresholds.MaxPlainCommands {
		return true
	}
	rich := false
	cfg.CLI.Walk(func(cmd *schema.Command, _ []string) {
		if len(cmd.Options) > a.thresholds.MaxPlainOptions || HasMarkup(cmd.Description) {
			rich = true
		}
	})
	return rich
}

// HasMarkup reports whether text contains a recognized markup token.
func HasMarkup(text string) bool {
	return markupPattern.MatchString(text)
}

func allOptions(cfg *schema.Config) []schema.Option {
	out := append([]schema.Option(nil), cfg.CLI.Options...)
	cfg.CLI.Walk(func(cmd *schema.Command, _ []string) {
		out = append(out, cmd.Options...)
	})
	return out
}

func anyMatch(names []string, pred func(string) bool) bool {
	for _, n := range names {
		if pred(n) {
			return true
		}
	}
	return false
}

func anyIn(names []string, set []string) bool {
	return anyMatch(names, func(n string) bool {
		for _, s := range set {
			if n == s {
				return true
			}
		}
		return false
	})
}

func anyOptionNamed(opts []schema.Option, names ...string) bool {
	for _, o := range opts {
		if anyIn([]string{fold(o.Name)}, names) {
			return true
		}
	}
	return false
}

func anyFormatOffersJSON(opts []schema.Option) bool {
	for _, o := range opts {
		if !anyIn([]string{fold(o.Name)}, formatOptions) {
			continue
		}
		for _, c := range o.Choices {
			if strings.EqualFold(c, "json") {
				return true
			}
		}
	}
	return false
}
