package constant

// Default prompt templates for the outline and question stages. Placeholders
// are substituted by pkg/prompt.Render; callers in custom-prompt mode supply
// a template with the substitution already done.

const DefaultOutlinePromptV1 = `You are designing a learning course about: {{topic}}

Produce exactly {{count}} chapter titles that together cover the topic from
fundamentals to advanced aspects, ordered for a learner.

Respond with JSON only:
{"outlines": [{"title": "..."}]}`

const DefaultQuizPromptV1 = `Write exactly {{count}} multiple-choice quiz questions about the chapter
"{{outline}}" of a course on "{{topic}}".

Each question must have exactly 4 options labeled implicitly by position and
one correct answer given as a letter A-D. Include a short explanation.

Respond with JSON only:
{"questions": [{"content": "...", "options": ["...", "...", "...", "..."], "answer": "A", "explanation": "..."}]}`
