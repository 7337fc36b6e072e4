package extraction

import "time"

// extractionPolicy is the fixed system instruction sent with every
// extraction request. The date anchor is appended at build time so the model
// can resolve relative mentions like "by Friday".
const extractionPolicy = `You are an expert meeting minutes analyzer. Extract action items from meeting transcripts.

RULES:
1. Only extract clear, actionable tasks (not discussions or questions)
2. Infer owner from context (e.g., "John will...", "Sarah to...", "assigned to Mike")
3. Infer due dates from explicit mentions (e.g., "by Friday", "next week", "end of month")
4. If no owner/date is clear, set to null
5. Be conservative: skip ambiguous items
6. Generate 1-2 relevant tags per item (e.g., "urgent", "follow-up", "research", "review")
7. Assign priority ("high", "medium", or "low") based on urgency cues; default to "medium"

OUTPUT FORMAT:
Return a JSON object with this exact structure:
{
  "actionItems": [
    {
      "description": "Clear, concise task description",
      "owner": "Name" | null,
      "dueDate": "YYYY-MM-DD" | null,
      "priority": "high" | "medium" | "low",
      "tags": ["tag1", "tag2"]
    }
  ]
}

Return ONLY valid JSON. Do not include explanatory text.`

const userPromptPrefix = "Extract action items from this transcript:\n\n"

// dateAnchorFormat renders the current date long-form, e.g.
// "Friday, February 13, 2026".
const dateAnchorFormat = "Monday, January 2, 2006"

// BuildPrompts composes the system and user prompts for one extraction
// attempt. Deterministic for a given transcript and date.
func BuildPrompts(text string, currentDate time.Time) (systemPrompt, userPrompt string) {
	systemPrompt = extractionPolicy + "\n\nCurrent Date: " + currentDate.Format(dateAnchorFormat)
	userPrompt = userPromptPrefix + text
	return systemPrompt, userPrompt
}
