package refactor

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// SplitStoryByVerb creates a story that is split by the given one, with one
// feature per verb on the entity of the original's first feature.
type SplitStoryByVerb struct {
	Story string
	Verbs []string
}

func (r *SplitStoryByVerb) Name() string { return "SplitStoryByVerb" }

func (r *SplitStoryByVerb) target(c *Context) (*model.UserRequirement, error) {
	story, err := userStory(c, r.Name(), r.Story)
	if err != nil {
		return nil, err
	}

	if len(story.Features) == 0 {
		return nil, diagnostic.Violation(r.Name(), "user story %q has no feature to split", story.Name)
	}

	if len(r.Verbs) == 0 {
		return nil, diagnostic.Violation(r.Name(), "at least one verb is required")
	}

	return story, nil
}

func (r *SplitStoryByVerb) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *SplitStoryByVerb) Refactor(c *Context) error {
	story, err := r.target(c)
	if err != nil {
		return err
	}

	ix := c.Index()
	base := story.Features[0]

	split := &model.UserRequirement{
		ID:             model.NewID(),
		Kind:           model.UserStory,
		Name:           model.UniqueName(ix, story.Name+"_Split", nil, model.KindUserRequirement),
		Role:           story.Role,
		Benefit:        story.Benefit,
		SplittingStory: model.RefTo(story),
	}

	seen := make(map[string]bool)

	for _, verb := range r.Verbs {
		if seen[verb] {
			continue
		}

		seen[verb] = true
		split.Features = append(split.Features, &model.Feature{
			Verb:       verb,
			Article:    base.Article,
			Entity:     base.Entity,
			Attributes: slices.Clone(base.Attributes),
		})
	}

	doc := ix.Document(story.ID)
	i := slices.Index(doc.UserRequirements, story)
	doc.UserRequirements = slices.Insert(doc.UserRequirements, i+1, split)

	c.Logger.Debug("split story", zap.String("story", story.Name), zap.String("split", split.Name))

	return nil
}

// userStory resolves a story that must exist.
func userStory(c *Context, command, name string) (*model.UserRequirement, error) {
	ur, err := mustFind[*model.UserRequirement](c, command, model.KindUserRequirement, name)
	if err != nil {
		return nil, err
	}

	if ur.Kind != model.UserStory {
		return nil, diagnostic.Violation(command, "%q is a %s, not a user story", name, ur.Kind)
	}

	return ur, nil
}

// CreateStakeholderForUserStoryRole adds a stakeholder named after the role
// of a user story. It does nothing when the stakeholder exists.
type CreateStakeholderForUserStoryRole struct {
	Story string
}

func (r *CreateStakeholderForUserStoryRole) Name() string { return "CreateStakeholderForUserStoryRole" }

func (r *CreateStakeholderForUserStoryRole) target(c *Context) (string, error) {
	story, err := userStory(c, r.Name(), r.Story)
	if err != nil {
		return "", err
	}

	if story.Role == "" {
		return "", diagnostic.Violation(r.Name(), "user story %q has no role", story.Name)
	}

	name := model.Identifier(story.Role)
	if len(c.Index().ByName(name, model.KindStakeholder, model.KindStakeholderGroup)) > 0 {
		return "", fmt.Errorf("stakeholder %q: %w", name, ErrAlreadyApplied)
	}

	return name, nil
}

func (r *CreateStakeholderForUserStoryRole) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *CreateStakeholderForUserStoryRole) Refactor(c *Context) error {
	name, err := r.target(c)
	if err != nil {
		return err
	}

	root := stakeholdersOf(c.Document)
	root.Items = append(root.Items, &model.Stakeholder{ID: model.NewID(), Name: name})

	return nil
}

// stakeholdersOf returns the first stakeholders block of doc, creating it.
func stakeholdersOf(doc *model.ContextMappingModel) *model.Stakeholders {
	if len(doc.Stakeholders) == 0 {
		doc.Stakeholders = append(doc.Stakeholders, &model.Stakeholders{ID: model.NewID()})
	}

	return doc.Stakeholders[0]
}
