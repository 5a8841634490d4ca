package registry

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/pkg/notion"
)

// Notion property names for the dimension and use-case databases.
const (
	propName         = "Name"
	propSubcomponent = "Subcomponent"
	propWeight       = "Weight"
	propDescription  = "Description"
	propCompany      = "Company"
	propChallenge    = "Challenge"
	propApproach     = "Approach"
	propDefinition   = "Definition"
	propResults      = "Results"
	propKeyInsight   = "Key Insight"
)

// LoadFromNotion builds a registry from the Active pages of the dimension
// and use-case databases. Either id may be empty to skip that database.
// Malformed pages are skipped with a warning.
func LoadFromNotion(ctx context.Context, client notion.Client, dimensionDB, useCaseDB string) (*Registry, error) {
	subs := map[string]*model.Subcomponent{}
	var order []string
	get := func(id string) *model.Subcomponent {
		s, ok := subs[id]
		if !ok {
			s = &model.Subcomponent{ID: id}
			subs[id] = s
			order = append(order, id)
		}
		return s
	}

	if dimensionDB != "" {
		pages, err := notion.ActivePages(ctx, client, dimensionDB)
		if err != nil {
			return nil, eris.Wrap(err, "registry: load dimensions from notion")
		}
		for _, p := range pages {
			id, dim, err := parseDimensionPage(p)
			if err != nil {
				zap.L().Warn("registry: skipping malformed dimension page",
					zap.String("page_id", string(p.ID)),
					zap.Error(err),
				)
				continue
			}
			s := get(id)
			s.Dimensions = append(s.Dimensions, dim)
		}
	}

	if useCaseDB != "" {
		pages, err := notion.ActivePages(ctx, client, useCaseDB)
		if err != nil {
			return nil, eris.Wrap(err, "registry: load use cases from notion")
		}
		for _, p := range pages {
			id, uc, err := parseUseCasePage(p)
			if err != nil {
				zap.L().Warn("registry: skipping malformed use case page",
					zap.String("page_id", string(p.ID)),
					zap.Error(err),
				)
				continue
			}
			s := get(id)
			s.UseCases = append(s.UseCases, uc)
		}
	}

	out := make([]model.Subcomponent, 0, len(order))
	for _, id := range order {
		out = append(out, *subs[id])
	}
	return New(out...), nil
}

func parseDimensionPage(p notionapi.Page) (string, model.Dimension, error) {
	dim := model.Dimension{
		Name:        strings.TrimSpace(notion.Title(p, propName)),
		Weight:      notion.Number(p, propWeight),
		Description: notion.Text(p, propDescription),
	}
	id, err := subcomponentID(p)
	if err != nil {
		return "", dim, err
	}
	if dim.Name == "" {
		return "", dim, eris.New("missing Name property")
	}
	return id, dim, nil
}

func parseUseCasePage(p notionapi.Page) (string, model.UseCase, error) {
	uc := model.UseCase{
		Company:    strings.TrimSpace(notion.Title(p, propCompany)),
		Challenge:  notion.Text(p, propChallenge),
		Approach:   notion.Text(p, propApproach),
		Definition: notion.Text(p, propDefinition),
		Results:    notion.Text(p, propResults),
		KeyInsight: notion.Text(p, propKeyInsight),
	}
	id, err := subcomponentID(p)
	if err != nil {
		return "", uc, err
	}
	if uc.Company == "" {
		return "", uc, eris.New("missing Company property")
	}
	return id, uc, nil
}

// subcomponentID reads the Subcomponent property as rich text or select.
func subcomponentID(p notionapi.Page) (string, error) {
	id := strings.TrimSpace(notion.Text(p, propSubcomponent))
	if id == "" {
		id = strings.TrimSpace(notion.Select(p, propSubcomponent))
	}
	if _, _, ok := ParseID(id); !ok {
		return "", eris.Errorf("invalid Subcomponent property %q", id)
	}
	return id, nil
}
