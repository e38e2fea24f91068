// Package prompt holds the prompt templates sent to the AI adapter.
package prompt

import (
	"fmt"
	"strings"
)

// Context selects which analysis a resume prompt asks for.
type Context string

const (
	// ContextKnowledgeGraph asks for entities, relationships and a summary as JSON.
	ContextKnowledgeGraph Context = "knowledge_graph"
)

const knowledgeGraphTemplate = `Analyze the following professional profile and build a knowledge graph of the person's skills and competencies.

Classify every entity as exactly one of these types:
- person: the individual the profile describes
- skill: technical and professional skills, including programming languages
- knowledge: domain expertise and specialized knowledge areas
- tool: software, platforms, frameworks, databases, instruments
- qualification: degrees, certifications, licenses, passed exams
- role: job titles and professional positions
- workplace: companies, organizations, universities, institutions
- methodology: processes, methodologies, approaches

Do not use any other type and never use "other".

Return ONLY a JSON object with this shape and nothing before or after it:
{
  "entities": [
    {
      "id": "short_snake_case_id",
      "name": "Display name",
      "type": "one of the types above",
      "importance": 1.0-10.0,
      "description": "One sentence grounded in the profile",
      "attributes": {"key": "value"}
    }
  ],
  "relationships": [
    {
      "source": "entity id",
      "target": "entity id",
      "type": "has_skill | uses_tool | worked_at | holds_role | has_qualification | knows | applies",
      "strength": 1.0-10.0,
      "description": "How the two are connected"
    }
  ],
  "summary": "Two sentences describing the professional profile"
}

Every relationship source and target must be the id of an entity in the entities list.
Write names and descriptions in the language of the profile.

Profile:
%s
`

const classificationTemplate = `Classify this entity into one of these specific types:
- person: The individual
- skill: Technical and professional skills
- knowledge: Domain expertise and specialized knowledge areas
- tool: Software, platforms, frameworks, databases, instruments
- qualification: Degrees, certifications, licenses
- role: Job titles and professional positions
- workplace: Companies, organizations, institutions
- methodology: Processes, methodologies, approaches

Entity to classify:
Name: %s
Current Type: %s
Description: %s

Respond with only one word: the correct type from the list above.
`

// ResumeAnalysisPrompt renders the resume analysis prompt for a context.
func ResumeAnalysisPrompt(text string, ctx Context) (string, error) {
	text = strings.TrimSpace(text)
	switch ctx {
	case ContextKnowledgeGraph:
		return fmt.Sprintf(knowledgeGraphTemplate, text), nil
	default:
		return "", fmt.Errorf("unknown prompt context: %q", ctx)
	}
}

// ClassificationPrompt asks for a single canonical entity type.
func ClassificationPrompt(name, currentType, description string) string {
	return fmt.Sprintf(classificationTemplate, name, currentType, description)
}
