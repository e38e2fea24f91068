package graph

// DefaultKnowledgeGraph returns the generic profile used when extraction fails.
// Each call returns a fresh value.
func DefaultKnowledgeGraph() *KnowledgeGraph {
	skill := func(id, name string, importance Weight, description, relevance string) Entity {
		return Entity{
			ID: id, Name: name, Type: TypeSkill, Importance: importance, Description: description,
			Attributes: Attributes{"proficiency": "Advanced", "relevance_to_field": relevance},
		}
	}
	hasSkill := func(target string, strength Weight, description string) Relationship {
		return Relationship{Source: "candidate", Target: target, Type: "has_skill", Strength: strength, Description: description}
	}

	return &KnowledgeGraph{
		Entities: []Entity{
			{
				ID: "candidate", Name: "Professional Candidate", Type: TypePerson, Importance: 10.0,
				Description: "Experienced professional seeking new opportunities",
				Attributes:  Attributes{"role": "Professional", "experience": "Multi-year experience"},
			},
			skill("communication", "Communication Skills", 9.0, "Strong verbal and written communication abilities", "High"),
			skill("problem_solving", "Problem Solving", 8.5, "Analytical thinking and solution-oriented approach", "High"),
			skill("teamwork", "Teamwork & Collaboration", 8.0, "Ability to work effectively in team environments", "High"),
			skill("organization", "Organization & Planning", 7.5, "Strong organizational and time management skills", "Medium"),
		},
		Relationships: []Relationship{
			hasSkill("communication", 9.0, "Demonstrates strong communication in professional settings"),
			hasSkill("problem_solving", 8.5, "Applies analytical thinking to solve workplace challenges"),
			hasSkill("teamwork", 8.0, "Collaborates effectively with colleagues and stakeholders"),
			hasSkill("organization", 7.5, "Manages tasks and priorities efficiently"),
		},
		Summary: "Multi-skilled professional with strong foundational skills applicable across various industries and roles",
	}
}
