package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relgraphio/relgraph/internal/models"
)

// SchemaRegistry maps schema names to their table descriptors. Lookups are
// read-only after boot, so no locking is needed.
type SchemaRegistry struct {
	schemas map[string]models.SchemaDescriptor
}

// schemasFile is the on-disk shape of the registry.
type schemasFile struct {
	Schemas []models.SchemaDescriptor `yaml:"schemas"`
}

// DefaultSchema describes the tables created by the bundled migrations.
// It is registered whenever no schemas file is configured.
func DefaultSchema() models.SchemaDescriptor {
	return models.SchemaDescriptor{
		Name:             "default",
		NodeTable:        "graph_nodes",
		NodeIDColumn:     "id",
		EdgeTable:        "graph_edges",
		FromColumn:       "from_id",
		ToColumn:         "to_id",
		WeightColumn:     "weight",
		SoftDeleteColumn: "deleted_at",
		ValidFromColumn:  "valid_from",
		ValidToColumn:    "valid_to",
	}
}

// LoadSchemas reads the registry from path, or falls back to the default
// schema when path is empty.
func LoadSchemas(path string) (*SchemaRegistry, error) {
	reg := &SchemaRegistry{schemas: make(map[string]models.SchemaDescriptor)}

	if path == "" {
		def := DefaultSchema()
		reg.schemas[def.Name] = def

		return reg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schemas file: %w", err)
	}

	var file schemasFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing schemas file: %w", err)
	}

	if len(file.Schemas) == 0 {
		return nil, fmt.Errorf("schemas file %s defines no schemas", path)
	}

	for i := range file.Schemas {
		desc := file.Schemas[i]
		if desc.Name == "" {
			return nil, fmt.Errorf("schema %d in %s has no name", i, path)
		}

		if _, dup := reg.schemas[desc.Name]; dup {
			return nil, fmt.Errorf("duplicate schema name %q in %s", desc.Name, path)
		}

		if err := desc.Validate(); err != nil {
			return nil, fmt.Errorf("schema %q: %w", desc.Name, err)
		}

		reg.schemas[desc.Name] = desc
	}

	return reg, nil
}

// Get returns the descriptor for name, or ErrSchemaNotFound.
func (r *SchemaRegistry) Get(name string) (models.SchemaDescriptor, error) {
	desc, ok := r.schemas[name]
	if !ok {
		return models.SchemaDescriptor{}, fmt.Errorf("schema %q: %w", name, models.ErrSchemaNotFound)
	}

	return desc, nil
}

// Names returns all registered schema names in unspecified order.
func (r *SchemaRegistry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}

	return names
}
