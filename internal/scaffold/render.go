package scaffold

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"husk/internal/config"
)

// Render marshals doc into the YAML configuration-file format §6
// describes, with a comment banner identifying it as generated.
func Render(doc *config.Document) ([]byte, error) {
	body, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	header := []byte("# generated by husk init\n")
	return append(header, body...), nil
}
