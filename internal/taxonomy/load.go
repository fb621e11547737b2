package taxonomy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a taxonomy override from a YAML file shaped as
//
//	Sector Name:
//	  Subsector Name: [keyword, keyword, ...]
//
// The file is decoded through the yaml.Node API rather than into maps so
// that authored sector/subsector/keyword order survives: that order is the
// classification tie-break.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "taxonomy: read file")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "taxonomy: parse yaml")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, eris.New("taxonomy: empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, eris.New("taxonomy: top level must be a mapping of sectors")
	}

	var sectors []Sector
	for i := 0; i+1 < len(root.Content); i += 2 {
		secKey, secVal := root.Content[i], root.Content[i+1]
		if secVal.Kind != yaml.MappingNode {
			return nil, eris.Errorf("taxonomy: sector %q must map subsectors", secKey.Value)
		}

		sec := Sector{Name: secKey.Value}
		for j := 0; j+1 < len(secVal.Content); j += 2 {
			subKey, subVal := secVal.Content[j], secVal.Content[j+1]
			sub := Subsector{Name: subKey.Value}
			switch subVal.Kind {
			case yaml.SequenceNode:
				for _, kw := range subVal.Content {
					sub.Keywords = append(sub.Keywords, kw.Value)
				}
			case yaml.ScalarNode:
				// Null scalar means a keyword-less subsector (catch-all).
				if subVal.Tag != "!!null" {
					return nil, eris.Errorf("taxonomy: subsector %q must list keywords", subKey.Value)
				}
			default:
				return nil, eris.Errorf("taxonomy: subsector %q must list keywords", subKey.Value)
			}
			sec.Subsectors = append(sec.Subsectors, sub)
		}
		sectors = append(sectors, sec)
	}

	if len(sectors) == 0 {
		return nil, eris.New("taxonomy: no sectors defined")
	}
	return New(sectors), nil
}
