// Package mathgen defines the parametric math problem families: a read-only
// template registry, random parameter generation, closed-form answer
// computation and tolerance-based grading.
package mathgen

import (
	"sort"
)

// Range is an inclusive numeric parameter range.
type Range struct {
	Min float64
	Max float64
}

// Params is a concrete parameter assignment for one generated question.
type Params map[string]float64

// Template is the definition of a math problem family. Templates are
// immutable after process start; the registry is never mutated at runtime.
type Template struct {
	TypeID      string
	Topic       string
	Concept     string
	ParamRanges map[string]Range
	AsksFor     string
	Example     string
	Hint        string
	// Tolerance controls grading: how close the answer needs to be.
	Tolerance float64

	compute func(Params) float64
}

// ComputeAnswer evaluates the template's closed-form answer function.
func (t *Template) ComputeAnswer(params Params) float64 {
	return t.compute(params)
}

// Get returns the template with the given type id.
func Get(typeID string) (*Template, bool) {
	t, ok := registry[typeID]
	return t, ok
}

// All returns every registered template, ordered by type id.
func All() []*Template {
	list := make([]*Template, 0, len(registry))
	for _, t := range registry {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TypeID < list[j].TypeID })
	return list
}

// ByTopic returns the templates for a topic, ordered by type id.
func ByTopic(topic string) []*Template {
	list := []*Template{}
	for _, t := range All() {
		if t.Topic == topic {
			list = append(list, t)
		}
	}
	return list
}

// TypeIDs returns template type ids, optionally filtered by topic.
func TypeIDs(topic string) []string {
	templates := All()
	if topic != "" {
		templates = ByTopic(topic)
	}
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.TypeID)
	}
	return ids
}

// Topics returns the distinct topics in the registry, sorted.
func Topics() []string {
	seen := map[string]bool{}
	topics := []string{}
	for _, t := range registry {
		if !seen[t.Topic] {
			seen[t.Topic] = true
			topics = append(topics, t.Topic)
		}
	}
	sort.Strings(topics)
	return topics
}
