package models

import "encoding/json"

// Namespace separates roadmaps from learning items.
// It is also the first segment of every Step Identifier.
type Namespace string

// Namespace constants
const (
	NamespaceRoadmap  Namespace = "roadmap"
	NamespaceLearning Namespace = "learning"
)

// Valid reports whether n is one of the known namespaces
func (n Namespace) Valid() bool {
	return n == NamespaceRoadmap || n == NamespaceLearning
}

// LinkKind distinguishes the two link lists of a step
type LinkKind string

// LinkKind constants
const (
	LinkKindResource   LinkKind = "resource"
	LinkKindAssignment LinkKind = "assignment"
)

// Link is a named external link attached to a step
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Step is one checkable unit of work inside a content item.
// ID is unique within its parent and never reassigned.
type Step struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Resources   []Link `json:"resources"`
	Assignments []Link `json:"assignments"`
}

// Content is a roadmap or a learning item
type Content struct {
	ID          int       `json:"-"`
	Namespace   Namespace `json:"-"`
	Slug        string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        Icon      `json:"icon"`
	Steps       []Step    `json:"steps"`
}

// StepID returns the Step Identifier of the given step of c
func (c *Content) StepID(step Step) string {
	return NewStepID(c.Namespace, c.Slug, step.ID)
}

// contentJSON is the wire shape: the slug travels as roadmapId or learningId
type contentJSON struct {
	RoadmapID   string `json:"roadmapId,omitempty"`
	LearningID  string `json:"learningId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
	Steps       []Step `json:"steps"`
}

// MarshalJSON implements json.Marshaler
func (c Content) MarshalJSON() ([]byte, error) {
	out := contentJSON{
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.Icon,
		Steps:       c.Steps,
	}
	if out.Steps == nil {
		out.Steps = []Step{}
	}
	switch c.Namespace {
	case NamespaceLearning:
		out.LearningID = c.Slug
	default:
		out.RoadmapID = c.Slug
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Content) UnmarshalJSON(data []byte) error {
	var in contentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Content{
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Steps:       in.Steps,
	}
	if in.LearningID != "" {
		c.Namespace = NamespaceLearning
		c.Slug = in.LearningID
	} else {
		c.Namespace = NamespaceRoadmap
		c.Slug = in.RoadmapID
	}
	return nil
}

// Review is a testimonial shown on the home page
type Review struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Img    string `json:"img"`
	Course string `json:"course"`
	Quote  string `json:"quote"`
}

// TotalSteps counts the steps of all given content items
func TotalSteps(items ...[]Content) int {
	total := 0
	for _, list := range items {
		for _, c := range list {
			total += len(c.Steps)
		}
	}
	return total
}
