package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/tacogips/clismith/internal/app"
	"github.com/tacogips/clismith/internal/schema"
)

// askFunc runs survey questions. Replaced in tests.
type askFunc func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error

// PromptForAnswers interactively asks for the values of a new configuration,
// offering defaults as the initial answers.
func PromptForAnswers(ask askFunc, defaults app.InitAnswers, languages []string) (app.InitAnswers, error) {
	qs := []*survey.Question{
		{
			Name: "PackageName",
			Prompt: &survey.Input{
				Message: "Package name",
				Default: defaults.PackageName,
				Help:    "Name of the generated package, e.g. my-tool",
			},
			Validate: survey.ComposeValidators(survey.Required, validName("package name")),
		},
		{
			Name: "CommandName",
			Prompt: &survey.Input{
				Message: "Command name",
				Default: defaults.CommandName,
				Help:    "Executable name users type to run the program",
			},
			Validate: survey.ComposeValidators(survey.Required, validName("command name")),
		},
		{
			Name: "DisplayName",
			Prompt: &survey.Input{
				Message: "Display name",
				Default: defaults.DisplayName,
				Help:    "Human-readable program name shown in help output",
			},
			Validate: survey.Required,
		},
		{
			Name: "Description",
			Prompt: &survey.Input{
				Message: "Description",
				Default: defaults.Description,
			},
			Validate: survey.Required,
		},
		{
			Name: "Language",
			Prompt: &survey.Select{
				Message: "Target language",
				Options: languages,
				Default: defaults.Language,
			},
		},
		{
			Name: "Author",
			Prompt: &survey.Input{
				Message: "Author (optional)",
				Default: defaults.Author,
			},
		},
	}

	answers := defaults
	if err := ask(qs, &answers); err != nil {
		return app.InitAnswers{}, fmt.Errorf("prompt cancelled: %w", err)
	}
	return answers, nil
}

// validName creates a survey validator accepting configuration names.
func validName(what string) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		if !schema.ValidName(str) {
			return fmt.Errorf("%s must start with a letter and contain only letters, digits, '-' or '_'", what)
		}
		return nil
	}
}
