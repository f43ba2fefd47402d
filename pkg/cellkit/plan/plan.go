// Package plan reads YAML edit plans and applies them to a document.
//
// A plan is a list of steps, each naming one document operation:
//
//	steps:
//	  - op: set
//	    sheet: Sheet1
//	    cell: B2
//	    type: str
//	    value: hello
//	  - op: merge
//	    sheet: Sheet1
//	    from: A1
//	    to: B1
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/cellkit-go/pkg/cellkit"
	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpSet        = "set"
	OpSetString  = "set-string"
	OpMerge      = "merge"
	OpCopyStyle  = "copy-style"
	OpAddSheet   = "add-sheet"
	OpInsertText = "insert-text"
)

// ErrInvalidPlan indicates a plan that cannot be decoded or fails validation.
var ErrInvalidPlan = errors.New("invalid plan")

// Plan is an ordered list of edit steps.
type Plan struct {
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step is a single edit. Which fields apply depends on Op.
type Step struct {
	Op    string `yaml:"op" validate:"required,oneof=set set-string merge copy-style add-sheet insert-text"`
	Sheet string `yaml:"sheet"`
	Cell  string `yaml:"cell" validate:"omitempty,cellref"`
	Type  string `yaml:"type" validate:"omitempty,oneof=n s str inlineStr b e d"`
	Value string `yaml:"value"`
	Style *int   `yaml:"style" validate:"omitempty,min=0"`

	// From and To are the merge endpoints.
	From string `yaml:"from" validate:"omitempty,cellref"`
	To   string `yaml:"to" validate:"omitempty,cellref"`

	// TemplateSheet and TemplateCell name the cell whose style is copied.
	TemplateSheet string `yaml:"template_sheet"`
	TemplateCell  string `yaml:"template_cell" validate:"omitempty,cellref"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their YAML names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cellref", isCellRef); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateStep, Step{})

	return v
}

func isCellRef(fl validator.FieldLevel) bool {
	_, _, err := cellkit.SplitReference(fl.Field().String())
	return err == nil
}

// validateStep checks the fields each operation needs.
func validateStep(sl validator.StructLevel) {
	step := sl.Current().Interface().(Step)

	switch step.Op {
	case OpSet, OpSetString:
		requireField(sl, step.Sheet, "sheet", "Sheet")
		requireField(sl, step.Cell, "cell", "Cell")
		if (step.TemplateSheet == "") != (step.TemplateCell == "") {
			requireField(sl, step.TemplateSheet, "template_sheet", "TemplateSheet")
			requireField(sl, step.TemplateCell, "template_cell", "TemplateCell")
		}
	case OpMerge:
		requireField(sl, step.Sheet, "sheet", "Sheet")
		requireField(sl, step.From, "from", "From")
		requireField(sl, step.To, "to", "To")
	case OpCopyStyle:
		requireField(sl, step.Sheet, "sheet", "Sheet")
		requireField(sl, step.Cell, "cell", "Cell")
		requireField(sl, step.TemplateSheet, "template_sheet", "TemplateSheet")
		requireField(sl, step.TemplateCell, "template_cell", "TemplateCell")
	}
}

func requireField(sl validator.StructLevel, value, name, structField string) {
	if value == "" {
		sl.ReportError(value, name, structField, "required", "")
	}
}

// Parse decodes and validates a YAML plan. Unknown keys are rejected.
func Parse(data []byte) (*Plan, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML plan from r and validates it.
func Decode(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty plan", ErrInvalidPlan)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads and validates the plan file at path.
func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Validate checks every step. All failures are reported in one error.
func (p *Plan) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Plan.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s=%s'", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPlan, strings.Join(msgs, "; "))
}
