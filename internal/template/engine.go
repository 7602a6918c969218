package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kbornfas/sms-prompt-go/internal/util"
)

// ErrNotFound is returned when a named template does not exist.
var ErrNotFound = errors.New("template not found")

// ErrMissingVariables is returned when a render lacks values for variables
// the template references.
var ErrMissingVariables = errors.New("missing template variables")

var variablePattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Engine renders message templates stored as *.txt files in a directory.
// Variables use the {{name}} marker syntax.
type Engine struct {
	dir string
}

// NewEngine creates an engine over the given directory, creating it if
// needed.
func NewEngine(dir string) (*Engine, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("template engine: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("template engine: create directory: %w", err)
	}
	return &Engine{dir: dir}, nil
}

// Dir returns the directory backing this engine.
func (e *Engine) Dir() string { return e.dir }

// List returns the names of all available templates, sorted.
func (e *Engine) List() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("template engine: list: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".txt") {
			names = append(names, strings.TrimSuffix(name, ".txt"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Content returns the raw template content.
func (e *Engine) Content(name string) (string, error) {
	path, err := e.path(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return "", fmt.Errorf("template engine: read %q: %w", name, err)
	}
	return string(data), nil
}

// Variables extracts the distinct variable names referenced by the
// template content, in order of first appearance.
func Variables(content string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, match := range variablePattern.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Render loads the named template and substitutes the supplied variables.
// Variables referenced by the template but absent from vars fail the
// render with ErrMissingVariables.
func (e *Engine) Render(name string, vars map[string]string) (string, error) {
	content, err := e.Content(name)
	if err != nil {
		return "", err
	}
	return RenderString(content, vars)
}

// RenderString substitutes {{name}} markers in content with values from
// vars.
func RenderString(content string, vars map[string]string) (string, error) {
	var missing []string
	for _, name := range Variables(content) {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingVariables, strings.Join(missing, ", "))
	}

	rendered := variablePattern.ReplaceAllStringFunc(content, func(marker string) string {
		name := variablePattern.FindStringSubmatch(marker)[1]
		return vars[name]
	})
	return rendered, nil
}

// Create writes a new template file. Existing templates are overwritten.
func (e *Engine) Create(name, content string) error {
	path, err := e.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("template engine: write %q: %w", name, err)
	}
	return nil
}

// Delete removes a template file.
func (e *Engine) Delete(name string) error {
	path, err := e.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("template engine: delete %q: %w", name, err)
	}
	return nil
}

func (e *Engine) path(name string) (string, error) {
	validated, err := util.ValidateTemplateName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(e.dir, validated+".txt"), nil
}
