package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-medforms/pkg/dates"
	"github.com/goliatone/go-medforms/pkg/model"
)

// boundToday is the sentinel a YAML date bound uses to mean "resolve at
// render time".
const boundToday = "today"

// LoadOption configures a Load call.
type LoadOption func(*loader)

// WithLoadLogger replaces the no-op logger used while walking config files.
func WithLoadLogger(logger zerolog.Logger) LoadOption {
	return func(l *loader) {
		l.logger = logger
	}
}

type loader struct {
	logger zerolog.Logger
}

// Load walks fsys for .yaml and .yml files and registers every definition
// it finds into a fresh Registry. File order does not matter; lookups go
// by entity name.
func Load(fsys fs.FS, opts ...LoadOption) (*Registry, error) {
	l := &loader{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	registry := NewRegistry(WithRegistryLogger(l.logger))
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", name, err)
		}
		def, err := l.parse(name, data)
		if err != nil {
			return err
		}
		if err := registry.Register(def); err != nil {
			return fmt.Errorf("catalog: %s: %w", name, err)
		}
		l.logger.Debug().Str("file", name).Str("entity", def.Entity).
			Int("fields", len(def.Fields)).Msg("definition loaded")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

type fileDefinition struct {
	Entity      string            `yaml:"entity"`
	Title       string            `yaml:"title"`
	Endpoint    string            `yaml:"endpoint"`
	Method      string            `yaml:"method"`
	Description string            `yaml:"description"`
	Metadata    map[string]string `yaml:"metadata"`
	Fields      []fileField       `yaml:"fields"`
}

type fileField struct {
	Name           string            `yaml:"name"`
	Type           string            `yaml:"type"`
	Label          string            `yaml:"label"`
	Placeholder    string            `yaml:"placeholder"`
	Description    string            `yaml:"description"`
	Required       bool              `yaml:"required"`
	MinLength      int               `yaml:"minLength"`
	MaxLength      int               `yaml:"maxLength"`
	Min            *float64          `yaml:"min"`
	Max            *float64          `yaml:"max"`
	MinRows        int               `yaml:"minRows"`
	MaxRows        int               `yaml:"maxRows"`
	MaxTags        int               `yaml:"maxTags"`
	Options        []fileOption      `yaml:"options"`
	DynamicOptions string            `yaml:"dynamicOptions"`
	GridColumn     int               `yaml:"gridColumn"`
	MinDate        string            `yaml:"minDate"`
	MaxDate        string            `yaml:"maxDate"`
	Metadata       map[string]string `yaml:"metadata"`
}

type fileOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

func (l *loader) parse(file string, data []byte) (model.FormDefinition, error) {
	var raw fileDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return model.FormDefinition{}, fmt.Errorf("catalog: parse %s: %w", file, err)
	}

	def := model.FormDefinition{
		Entity:      raw.Entity,
		Title:       raw.Title,
		Endpoint:    raw.Endpoint,
		Method:      raw.Method,
		Description: raw.Description,
		Metadata:    raw.Metadata,
	}

	for _, field := range raw.Fields {
		fieldType := model.FieldType(field.Type)
		if !fieldType.Valid() {
			l.logger.Warn().Str("file", file).Str("field", field.Name).
				Str("type", field.Type).Msg("unknown field type skipped")
			continue
		}
		minDate, err := parseBound(field.MinDate)
		if err != nil {
			return model.FormDefinition{}, fmt.Errorf("catalog: %s field %q minDate: %w", file, field.Name, err)
		}
		maxDate, err := parseBound(field.MaxDate)
		if err != nil {
			return model.FormDefinition{}, fmt.Errorf("catalog: %s field %q maxDate: %w", file, field.Name, err)
		}
		def.Fields = append(def.Fields, model.Field{
			Name:           field.Name,
			Type:           fieldType,
			Label:          field.Label,
			Placeholder:    field.Placeholder,
			Description:    field.Description,
			Required:       field.Required,
			MinLength:      field.MinLength,
			MaxLength:      field.MaxLength,
			Min:            field.Min,
			Max:            field.Max,
			MinRows:        field.MinRows,
			MaxRows:        field.MaxRows,
			MaxTags:        field.MaxTags,
			Options:        fieldOptions(field.Options),
			DynamicOptions: field.DynamicOptions,
			GridColumn:     field.GridColumn,
			MinDate:        minDate,
			MaxDate:        maxDate,
			Metadata:       field.Metadata,
		})
	}
	return def, nil
}

func fieldOptions(raw []fileOption) []model.Option {
	if len(raw) == 0 {
		return nil
	}
	options := make([]model.Option, 0, len(raw))
	for _, opt := range raw {
		options = append(options, model.Option{Value: opt.Value, Label: opt.Label})
	}
	return options
}

// parseBound accepts an empty string, the "today" sentinel, or a calendar
// date in YYYY-MM-DD form.
func parseBound(raw string) (dates.Bound, error) {
	switch {
	case raw == "":
		return dates.Bound{}, nil
	case strings.EqualFold(raw, boundToday):
		return dates.TodayBound(), nil
	case dates.Valid(raw):
		return dates.On(raw), nil
	default:
		return dates.Bound{}, fmt.Errorf("%w: %q", dates.ErrInvalidDate, raw)
	}
}
