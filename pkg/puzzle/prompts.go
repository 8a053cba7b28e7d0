package puzzle

// Prompt templates for the questions game. Placeholders are substituted by
// pkg/prompt.Render; the JSON shapes here mirror the structs in types.go.

const breakdownPrompt = `Break down the following knowledge point into the smallest sub-points
worth quizzing a learner on. Answer in {{language}}.

Knowledge point: {{knowledge_point}}

For each sub-point, classify it as one of: person, event, concept, place,
invention, process, time. Then recommend which puzzle question types suit it
best, from: clue, fill_blank, guess_image, event_order, matching.

Respond with JSON only:
{"knowledge_point": "...", "sub_points": [{"content": "...", "category": "...", "recommended_types": ["..."]}]}`

const cluePrompt = `Create a guessing game about: {{knowledge_point}}
Difficulty: {{difficulty}}. Answer in {{language}}.

Write at least 3 clues ordered from hardest to easiest, all pointing at one
answer. Do not name the answer inside any clue.

Respond with JSON only:
{"answer": "...", "clues": ["...", "...", "..."], "explanation": "..."}`

const fillBlankPrompt = `Create a fill-in-the-blank exercise about: {{knowledge_point}}
Difficulty: {{difficulty}}. Answer in {{language}}.

Write one factual sentence or short paragraph and blank out the key terms.
Mark each blank in the text as ____ and report its 0-based position among
the blanks.

Respond with JSON only:
{"text": "...", "blanks": [{"position": 0, "answer": "..."}], "explanation": "..."}`

const guessImagePrompt = `Create a guess-the-image puzzle about: {{knowledge_point}}
Difficulty: {{difficulty}}. Answer in {{language}}.

Describe an image that depicts the subject without naming it, then give the
answer and optional hints.

Respond with JSON only:
{"image_prompt": "...", "answer": "...", "hints": ["..."], "explanation": "..."}`

const eventOrderPrompt = `Create an event-ordering puzzle about: {{knowledge_point}}
Difficulty: {{difficulty}}. Answer in {{language}}.

List at least 3 real events with short ids (e1, e2, ...) in shuffled order,
then give the chronologically correct order of ids.

Respond with JSON only:
{"events": [{"id": "e1", "content": "..."}], "correct_order": ["e2", "e1", "e3"], "explanation": "..."}`

const matchingPrompt = `Create a matching puzzle about: {{knowledge_point}}
Difficulty: {{difficulty}}. Answer in {{language}}.

Build two columns of at least 2 items each with short ids (l1..., r1...) and
the correct pairs between them.

Respond with JSON only:
{"left_items": [{"id": "l1", "content": "..."}], "right_items": [{"id": "r1", "content": "..."}], "correct_pairs": [{"left_id": "l1", "right_id": "r1"}], "explanation": "..."}`

var typePrompts = map[QuestionType]string{
	TypeClue:       cluePrompt,
	TypeFillBlank:  fillBlankPrompt,
	TypeGuessImage: guessImagePrompt,
	TypeEventOrder: eventOrderPrompt,
	TypeMatching:   matchingPrompt,
}
