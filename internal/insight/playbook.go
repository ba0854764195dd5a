package insight

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rule holds the copy surfaced when a recommendation rule fires.
type Rule struct {
	Action   string `yaml:"action"`
	Priority string `yaml:"priority"`
}

func (r Rule) with(reason string) Recommendation {
	return Recommendation{Action: r.Action, Priority: r.Priority, Reason: reason}
}

// Playbook maps each recommendation rule to its copy. Agencies tune the
// wording per engagement without touching the thresholds.
type Playbook struct {
	Flagship    Rule `yaml:"flagship"`
	Authority   Rule `yaml:"authority"`
	Content     Rule `yaml:"content"`
	Recovery    Rule `yaml:"recovery"`
	Reviews     Rule `yaml:"reviews"`
	Expansion   Rule `yaml:"expansion"`
	Maintenance Rule `yaml:"maintenance"`
}

// DefaultPlaybook returns the compiled-in recommendation copy.
func DefaultPlaybook() *Playbook {
	return &Playbook{
		Flagship:    Rule{Action: "Escalate to the flagship SEO package with weekly on-page and citation work", Priority: "high"},
		Authority:   Rule{Action: "Invest in authority building: link outreach and third-party profiles", Priority: "medium"},
		Content:     Rule{Action: "Publish service-area content targeting the weakest keywords", Priority: "medium"},
		Recovery:    Rule{Action: "Run a recovery audit to find what reversed the recent gains", Priority: "high"},
		Reviews:     Rule{Action: "Launch a review collection campaign to lift map-pack conversion", Priority: "medium"},
		Expansion:   Rule{Action: "Expand the tracked keyword set to cover more buying intent", Priority: "low"},
		Maintenance: Rule{Action: "Maintain the current program and defend top positions", Priority: "low"},
	}
}

// LoadPlaybook reads recommendation copy from a YAML file. Rules missing
// from the file keep their compiled-in defaults.
func LoadPlaybook(path string) (*Playbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "insight: read playbook %s", path)
	}

	pb := DefaultPlaybook()
	if err := yaml.Unmarshal(data, pb); err != nil {
		return nil, eris.Wrap(err, "insight: parse playbook")
	}
	return pb, nil
}
