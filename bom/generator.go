package bom

import (
	"io"
	"log/slog"

	"github.com/FreshSupaSulley/ABC/catalog"
	"github.com/FreshSupaSulley/ABC/render"
)

// DefaultDocument is the annotated starter schema served to authors creating
// a new pattern. Its rules all name the reserved example placeholder, so it
// validates without producing line items.
const DefaultDocument = `# Questions to ask the product leads
# If you don't need any input from PLs, you can delete questions
questions:
  # 'num_racks' becomes a variable for calculations below
- name: num_racks
  type: integer
  min: 0
  max: 2
  prompt: "How many racks?"
  # Descriptions are optional. They'll appear below the question (prompt) on the build BOM page
  description: "How many racks does your network require?"
  default: 2

- name: power_cables
  type: boolean
  prompt: "Do you need power cables?"
  default: false

- name: support_years
  type: enum
  prompt: "How many years of support?"
  choices: [1, 3, 5]
  default: 3

# Define what goes into the BOM based on user input
# Products are required
products:
  # This product will be added everytime, unconditionally
- add:
    # Note: any products you add MUST already exist in the database.
    # If not, navigate to the products page to add them
    product: "example"
    quantity: 2

  # Use conditions for optional products
  # Conditions are enclosed in double quotes
- condition: "num_racks > 2"
  add:
    product: "example"
    quantity: "num_racks * 2"

- condition: "power_cables == True"
  add:
    product: "example"
    # You can either have a fixed quantity...
    quantity: 1

- condition: "support_years == 5"
  add:
    product: "example"
    # ... or a variable amount of items (double quotes denote an expression)
    quantity: "num_racks * 2"
`

// Generator ties the engine to its collaborators: the catalog lookup and the
// render configuration. It holds no mutable state, so one Generator may serve
// concurrent generations.
type Generator struct {
	catalog catalog.Lookup
	config  render.Config
	log     *slog.Logger
}

// NewGenerator creates a generator over the given catalog, rendering with
// cfg. logger may be nil.
func NewGenerator(cat catalog.Lookup, cfg render.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{catalog: cat, config: cfg, log: logger}
}

// Build runs the full pipeline short of rendering: parse, validate answers,
// evaluate rules, price. final selects the end-user emptiness policy.
func (g *Generator) Build(name string, doc []byte, answers map[string]any, final bool) (*render.Table, error) {
	schema, err := ParseSchema(doc)
	if err != nil {
		return nil, err
	}
	ctx, err := schema.ValidateAnswers(answers)
	if err != nil {
		return nil, err
	}
	items, err := Evaluate(schema, ctx)
	if err != nil {
		return nil, err
	}
	g.log.Debug("rules evaluated",
		"name", name,
		"questions", len(schema.Questions),
		"rules", len(schema.Rules),
		"line_items", len(items))

	return Price(name, items, g.catalog, final)
}

// Generate produces the final PDF document for an end-user request.
func (g *Generator) Generate(name string, doc []byte, answers map[string]any) ([]byte, error) {
	table, err := g.Build(name, doc, answers, true)
	if err != nil {
		return nil, err
	}
	return render.PDF(table, g.config)
}

// GenerateSheet produces the spreadsheet artifact instead of the PDF.
func (g *Generator) GenerateSheet(name string, doc []byte, answers map[string]any) ([]byte, error) {
	table, err := g.Build(name, doc, answers, true)
	if err != nil {
		return nil, err
	}
	return render.Sheet(table, g.config)
}

// Check validates a schema document the way a save action does: it parses the
// document, answers every question with its declared default, and runs the
// pipeline with the dry-run emptiness policy. An empty result is fine; any
// other validation failure is returned.
func (g *Generator) Check(name string, doc []byte) (*Schema, error) {
	schema, err := ParseSchema(doc)
	if err != nil {
		return nil, err
	}

	defaults := make(map[string]any, len(schema.Questions))
	for _, q := range schema.Questions {
		defaults[q.Name] = q.Default
	}

	ctx, err := schema.ValidateAnswers(defaults)
	if err != nil {
		return nil, err
	}
	items, err := Evaluate(schema, ctx)
	if err != nil {
		return nil, err
	}
	if _, err := Price(name, items, g.catalog, false); err != nil {
		return nil, err
	}
	return schema, nil
}
