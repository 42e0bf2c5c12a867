// Package wizard prompts for scaffold parameters when "layergen new" is
// invoked without arguments on a terminal.
package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/layergen/layergen/internal/scaffold"
)

// ErrCancelled indicates the user aborted the wizard.
var ErrCancelled = errors.New("wizard cancelled")

// Result carries the answers collected by the wizard.
type Result struct {
	ProjectName string
	OutputDir   string
}

// Run prompts for a project name and output directory.
func Run() (*Result, error) {
	result := &Result{OutputDir: "."}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Used as the namespace and path token, e.g. ShopFloor").
				Validate(ValidateInput).
				Value(&result.ProjectName),
			huh.NewInput().
				Title("Output directory").
				Description("Parent directory for the generated solution").
				Value(&result.OutputDir),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	// Free-form input is normalized before validation so "shop floor"
	// becomes ShopFloor rather than an error.
	result.ProjectName = scaffold.NormalizeName(result.ProjectName)
	return result, nil
}

// ValidateInput accepts any input whose normalized form is a valid
// project name. Used as the huh field validator.
func ValidateInput(raw string) error {
	name := scaffold.NormalizeName(raw)
	if err := scaffold.ValidateName(name); err != nil {
		return fmt.Errorf("cannot derive a valid project name from %q", raw)
	}
	return nil
}
