package models

import (
	"fmt"
	"strconv"
	"strings"
)

const stepIDSeparator = "-"

// NewStepID builds the identifier of one step, e.g. "roadmap-web-3"
func NewStepID(ns Namespace, contentID string, step int) string {
	return fmt.Sprintf("%s%s%s%s%d", ns, stepIDSeparator, contentID, stepIDSeparator, step)
}

// ParseStepID splits a Step Identifier into its parts.
// The content id may contain the separator itself, so the namespace is cut at the
// first separator and the step number at the last one.
func ParseStepID(id string) (Namespace, string, int, error) {
	first := strings.Index(id, stepIDSeparator)
	last := strings.LastIndex(id, stepIDSeparator)
	if first < 0 || first == last {
		return "", "", 0, fmt.Errorf("%w: step id %q must look like <namespace>-<content>-<step>", ErrInvalidRequest, id)
	}

	ns := Namespace(id[:first])
	if !ns.Valid() {
		return "", "", 0, fmt.Errorf("%w: unknown namespace %q", ErrInvalidRequest, ns)
	}

	contentID := id[first+1 : last]
	if contentID == "" {
		return "", "", 0, fmt.Errorf("%w: step id %q has an empty content id", ErrInvalidRequest, id)
	}

	step, err := strconv.Atoi(id[last+1:])
	if err != nil || step <= 0 {
		return "", "", 0, fmt.Errorf("%w: step id %q has an invalid step number", ErrInvalidRequest, id)
	}

	return ns, contentID, step, nil
}
