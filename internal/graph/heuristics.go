package graph

import "strings"

type keywordRule struct {
	inName   bool // match against the name, otherwise the description
	keywords []string
	result   EntityType
}

// Rules are checked in order; the first hit wins.
var keywordRules = []keywordRule{
	{true, []string{"university", "college", "school", "company", "corp", "inc", "organization"}, TypeWorkplace},
	{true, []string{"degree", "bachelor", "master", "phd", "certification", "license", "certified"}, TypeQualification},
	{true, []string{"manager", "director", "analyst", "engineer", "developer", "specialist", "coordinator"}, TypeRole},
	{true, []string{"software", "system", "platform", "tool", "application", "database"}, TypeTool},
	{false, []string{"knowledge", "expertise", "understanding", "domain", "field"}, TypeKnowledge},
	{false, []string{"method", "approach", "process", "methodology", "framework"}, TypeMethodology},
}

// GuessEntityType classifies an entity from keywords in its name and
// description. It always returns a canonical type and defaults to skill.
func GuessEntityType(e Entity) EntityType {
	name := strings.ToLower(e.Name)
	description := strings.ToLower(e.Description)

	for _, rule := range keywordRules {
		haystack := description
		if rule.inName {
			haystack = name
		}
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.result
			}
		}
	}
	return TypeSkill
}
