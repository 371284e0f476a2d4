package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/seichi-tools/panotabi/internal/model"
)

// LoadWorkList reads a YAML work list file of the form:
//
//	works:
//	  - id: 115908
//	    label: Oshi no Ko
//	  - id: 152091
//
// Labels are optional and only used for logging.
func LoadWorkList(path string) ([]model.Work, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read work list %s", path)
	}

	var wrapper struct {
		Works []model.Work `yaml:"works"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "config: parse work list %s", path)
	}

	if len(wrapper.Works) == 0 {
		return nil, eris.Errorf("config: work list %s has no works", path)
	}
	for i, w := range wrapper.Works {
		if w.ID <= 0 {
			return nil, eris.Errorf("config: work list %s: entry %d has no id", path, i)
		}
	}

	return wrapper.Works, nil
}
