package evaluation

import (
	"github.com/spf13/afero"

	lconfig "github.com/redvlock/agenta/pkg/config"
)

// Registry is the read-only snapshot of known evaluator configs. It is
// loaded once at startup and passed explicitly to whoever builds columns
// from it; nothing mutates it afterwards.
type Registry struct {
	Evaluators []EvaluatorConfig `json:"evaluators"`
}

func LoadRegistry(filename string, filesystem afero.Fs) (*Registry, error) {
	var registry Registry
	if err := lconfig.LoadYamlFile(filename, filesystem, &registry); err != nil {
		return nil, err
	}
	return &registry, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Evaluators))
	for _, evaluator := range r.Evaluators {
		names = append(names, evaluator.Name)
	}
	return names
}

func (r *Registry) ByKey(key string) (EvaluatorConfig, bool) {
	for _, evaluator := range r.Evaluators {
		if evaluator.EvaluatorKey == key {
			return evaluator, true
		}
	}
	return EvaluatorConfig{}, false
}
