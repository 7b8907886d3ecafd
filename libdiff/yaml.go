package libdiff

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// EncodeYAML encodes d in the YAML rendition of its JSON form.
func EncodeYAML(d Diff) ([]byte, error) {
	j, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(j)
}

// DecodeYAML decodes a Diff encoded by EncodeYAML. Since JSON is YAML, the
// JSON form is accepted as well.
func DecodeYAML(b []byte) (Diff, error) {
	j, err := yaml.YAMLToJSON(b)
	if err != nil {
		return Diff{}, err
	}
	var d Diff
	if err := json.Unmarshal(j, &d); err != nil {
		return Diff{}, err
	}
	return d, nil
}
