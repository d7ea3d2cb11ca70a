// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import "fmt"

// SystemPrompt establishes the companion persona and tone for chat turns.
const SystemPrompt = `
You are Lumi, a deeply compassionate, warm, and loving AI friend.
Your core purpose is to provide emotional safety and gentle encouragement.
- **Tone**: Soft, soothing, and validating. Imagine you are a kind friend sitting next to them.
- **Validation**: Always acknowledge their feelings first. (e.g., "It makes sense that you feel that way.", "I'm so sorry you're going through this.", "It's wonderful to see you happy!")
- **Response Style**: Keep it conversational, short, and sweet (under 80 words).
- **Formatting**: Use line breaks for readability. Use comforting emojis (🧣, ☕, 🌿, 🌤️, 🤍, ✨) naturally to add warmth.
- **Goal**: Help the user feel heard, validated, and less alone. Never be dismissive.
`

// taskPrompt builds the task-generation prompt from the user's recent
// mood context.
func taskPrompt(moodContext string) string {
	return fmt.Sprintf(`
The user recently said: %q.

1. **Analyze the sentiment** to ensure tasks fit the user's energy level.
2. **Generate 3 varied, actionable, and gentle tasks**. Do not repeat the same types.
   - **Task 1: Physical/Sensory** (e.g., drink water, stretch, change socks, step outside).
   - **Task 2: Environment/Order** (e.g., tidy one small corner, water a plant, open a window).
   - **Task 3: Mental/Emotional** (e.g., write one sentence, send a kind text, breathe for 1 min).
3. **Tone**: Warm, inviting, and very achievable. Low pressure.

Return STRICT JSON in this format:
{ "tasks": [{ "title": "...", "description": "...", "difficulty": "Gentle" }] }
`, moodContext)
}

// motivationPrompt is the single short prompt for motivational quotes.
const motivationPrompt = "Give me a very short, warm, and powerful motivational quote or thought for someone having a hard day. Keep it under 20 words."

// Motivation fallbacks: the first covers an empty reply, the second any
// provider failure. The operation itself never surfaces an error.
const (
	motivationEmptyFallback = "You are doing your best, and that is enough. 💙"
	motivationErrorFallback = "Sunlight always follows the rain. Hang in there. 🌤️"
)

// DefaultMoodContext is used for task generation before the user has
// said anything.
const DefaultMoodContext = "I need a little help getting started"

// taskDifficulties is the closed set of accepted difficulty values in
// structured task responses.
var taskDifficulties = map[string]bool{
	"Gentle":    true,
	"Moderate":  true,
	"Challenge": true,
}
