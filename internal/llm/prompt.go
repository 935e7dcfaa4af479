package llm

const extractionInstructions = `You are a structured data extraction assistant for a home food delivery startup called HomeChef.

Given unstructured text (possibly from a WhatsApp chat or message dump),
extract all identifiable food menu items with their details in this JSON format:

{
  "menu_items": [
    {
      "dish_name": string,
      "category": string | null,
      "ingredients": string[] | null,
      "price": string | null
    }
  ]
}

Rules:
- Ignore non-food messages or unrelated chatter.
- Deduplicate dish names.
- Return an empty array if nothing relevant is found.`

// BuildExtractionPrompt returns the two text parts sent as one user turn:
// the fixed instructions and the wrapped chat text.
func BuildExtractionPrompt(chatText string) []string {
	return []string{
		extractionInstructions,
		"Extract the JSON only, no commentary. Text:\n\n" + chatText,
	}
}
