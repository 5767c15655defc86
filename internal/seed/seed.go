// Package seed reads content seed files.
//
// A seed file is YAML (or JSON, which YAML accepts) with three top-level lists:
//
//	roadmaps:
//	  - roadmapId: web
//	    title: Web Development
//	    icon: globe
//	    steps:
//	      - id: 1
//	        title: HTML
//	        resources:
//	          - name: MDN
//	            url: https://developer.mozilla.org
//	learning:
//	  - learningId: os
//	    ...
//	reviews:
//	  - name: Priya
//	    course: Web Development
//	    quote: ...
package seed

import (
	"fmt"
	"io"
	"os"

	"github.com/skillhub/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// Document is a parsed seed file
type Document struct {
	Roadmaps []Item   `yaml:"roadmaps"`
	Learning []Item   `yaml:"learning"`
	Reviews  []Review `yaml:"reviews"`
}

// Item is one roadmap or learning item of a seed file
type Item struct {
	RoadmapID   string `yaml:"roadmapId"`
	LearningID  string `yaml:"learningId"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Steps       []Step `yaml:"steps"`
}

// Step is one step of a seed item
type Step struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Resources   []Link `yaml:"resources"`
	Assignments []Link `yaml:"assignments"`
}

// Link is a named URL of a seed step
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Review is a testimonial of a seed file
type Review struct {
	Name   string `yaml:"name"`
	Img    string `yaml:"img"`
	Course string `yaml:"course"`
	Quote  string `yaml:"quote"`
}

// Load reads and parses the seed file at path
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected so typos surface early.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &doc, nil
}

// Contents converts the roadmaps and learning items to content models.
// Roadmaps come first, each list in file order.
func (d *Document) Contents() []models.Content {
	contents := make([]models.Content, 0, len(d.Roadmaps)+len(d.Learning))
	for _, item := range d.Roadmaps {
		contents = append(contents, item.content(models.NamespaceRoadmap, item.RoadmapID))
	}
	for _, item := range d.Learning {
		contents = append(contents, item.content(models.NamespaceLearning, item.LearningID))
	}
	return contents
}

// ReviewModels converts the reviews to review models
func (d *Document) ReviewModels() []models.Review {
	reviews := make([]models.Review, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, models.Review{
			Name:   r.Name,
			Img:    r.Img,
			Course: r.Course,
			Quote:  r.Quote,
		})
	}
	return reviews
}

func (i Item) content(ns models.Namespace, slug string) models.Content {
	steps := make([]models.Step, 0, len(i.Steps))
	for _, s := range i.Steps {
		steps = append(steps, models.Step{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Resources:   links(s.Resources),
			Assignments: links(s.Assignments),
		})
	}

	return models.Content{
		Namespace:   ns,
		Slug:        slug,
		Title:       i.Title,
		Description: i.Description,
		Icon:        models.ResolveIcon(i.Icon),
		Steps:       steps,
	}
}

func links(in []Link) []models.Link {
	out := make([]models.Link, 0, len(in))
	for _, l := range in {
		out = append(out, models.Link{Name: l.Name, URL: l.URL})
	}
	return out
}
