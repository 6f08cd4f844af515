package clip

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk layout of a clip seed document.
type seedFile struct {
	Clips []Clip `yaml:"clips"`
}

// LoadSeed decodes a YAML seed document into clips.
func LoadSeed(r io.Reader) ([]Clip, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding clip seed: %w", err)
	}
	return doc.Clips, nil
}

// LoadSeedFile reads a YAML seed document from path.
func LoadSeedFile(path string) ([]Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening clip seed %s: %w", path, err)
	}
	defer f.Close()

	clips, err := LoadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clips, nil
}
