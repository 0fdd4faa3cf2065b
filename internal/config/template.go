package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const templateHeader = `# trialharvest configuration.
# Values here are overridden by TRIALHARVEST_* environment variables.
# contact_email is required: NCBI asks every E-utilities caller to
# identify themselves with a contact address.
`

// Template renders the default configuration as a YAML file body,
// ready to be edited by the operator.
func Template() ([]byte, error) {
	d := Default()
	doc := struct {
		*Config `yaml:",inline"`
		Timeout string `yaml:"timeout"`
	}{Config: d, Timeout: d.Timeout.String()}

	body, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering config template: %w", err)
	}
	return append([]byte(templateHeader), body...), nil
}
